package services

import (
	"context"
	"fmt"

	"github.com/docuchain/docuchain_app/internal/core/domain"
	portsrepo "github.com/docuchain/docuchain_app/internal/core/ports/repositories"
	portssvc "github.com/docuchain/docuchain_app/internal/core/ports/services"
)

// exportPageSize is the page size used internally when streaming the full
// chain set out of the store.
const exportPageSize = 500

type chainService struct {
	chainRepo portsrepo.ChainRepositoryFacade
}

// NewChainService creates the read-side service for resolved chains.
func NewChainService(chainRepo portsrepo.ChainRepositoryFacade) portssvc.ChainSvc {
	return &chainService{chainRepo: chainRepo}
}

var _ portssvc.ChainSvc = (*chainService)(nil)

func (s *chainService) GetChainByID(ctx context.Context, chainID string) (*domain.DocumentChain, error) {
	chain, err := s.chainRepo.FindChainByID(ctx, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain: %w", err)
	}
	return chain, nil
}

func (s *chainService) ListChains(ctx context.Context, status *domain.ChainStatus, limit int, offset int) ([]domain.DocumentChain, error) {
	chains, err := s.chainRepo.ListChains(ctx, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list chains: %w", err)
	}
	if chains == nil {
		return []domain.DocumentChain{}, nil
	}
	return chains, nil
}

// ExportChains pages through the whole chain set for JSON export.
func (s *chainService) ExportChains(ctx context.Context) ([]domain.DocumentChain, error) {
	all := []domain.DocumentChain{}
	for offset := 0; ; offset += exportPageSize {
		page, err := s.chainRepo.ListChains(ctx, nil, exportPageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to export chains: %w", err)
		}
		all = append(all, page...)
		if len(page) < exportPageSize {
			return all, nil
		}
	}
}
