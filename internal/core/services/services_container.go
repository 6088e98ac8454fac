package services

import (
	portsrepo "github.com/docuchain/docuchain_app/internal/core/ports/repositories"
	portssvc "github.com/docuchain/docuchain_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Extraction comes first since the matcher depends on it
	container.Extraction = NewExtractionService(repos.DocumentRepo, repos.MetadataRepo)

	container.Document = NewDocumentService(repos.DocumentRepo, repos.MetadataRepo)
	container.Matcher = NewMatcherService(repos.DocumentRepo, repos.MetadataRepo, repos.ChainRepo, container.Extraction)
	container.Chain = NewChainService(repos.ChainRepo)
	container.Statement = NewStatementService(repos.StatementRepo, repos.DocumentRepo, repos.MetadataRepo)

	return container
}
