package pgsql

import (
	portsrepo "github.com/docuchain/docuchain_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	documentRepo := newPgxDocumentRepository(dbPool)
	metadataRepo := newPgxMetadataRepository(dbPool)
	chainRepo := newPgxChainRepository(dbPool)
	statementRepo := newPgxStatementRepository(dbPool)

	return portsrepo.RepositoryProvider{
		DocumentRepo:  documentRepo,
		MetadataRepo:  metadataRepo,
		ChainRepo:     chainRepo,
		StatementRepo: statementRepo,
	}
}
