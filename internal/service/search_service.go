package service

import (
	"context"

	"github.com/villastay/rental-service/internal/models"
	"github.com/villastay/rental-service/internal/pricing"
	"github.com/villastay/rental-service/internal/repository"
)

// SearchResult is one page of matches plus the unpaged total.
type SearchResult struct {
	Villas []models.Villa
	Total  int64
}

type SearchService interface {
	Search(ctx context.Context, f repository.SearchFilter) (*SearchResult, error)
}

type searchService struct {
	villaRepo repository.VillaRepository
}

func NewSearchService(villaRepo repository.VillaRepository) SearchService {
	return &searchService{villaRepo: villaRepo}
}

// Search normalizes the filter and delegates to the composed repository
// query. Pure filter-and-sort: no relevance scoring.
func (s *searchService) Search(ctx context.Context, f repository.SearchFilter) (*SearchResult, error) {
	if f.CheckIn.IsZero() != f.CheckOut.IsZero() {
		return nil, ErrInvalidDateRange
	}
	if !f.CheckIn.IsZero() {
		f.CheckIn, f.CheckOut = pricing.Day(f.CheckIn), pricing.Day(f.CheckOut)
		if !f.CheckIn.Before(f.CheckOut) {
			return nil, ErrInvalidDateRange
		}
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	switch f.Sort {
	case "price_low", "price_high", "newest", "":
	default:
		f.Sort = ""
	}

	villas, total, err := s.villaRepo.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	return &SearchResult{Villas: villas, Total: total}, nil
}
