package catalog

import (
	"context"

	"github.com/nived-gurung/trekbooking/internal/domain"
	"github.com/nived-gurung/trekbooking/internal/repository"
)

// featuredCount is the number of most recent treks shown on the home page.
const featuredCount = 3

type CatalogUseCase interface {
	ListTreks(ctx context.Context, filter repository.TrekFilter) ([]domain.Trek, error)
	FeaturedTreks(ctx context.Context) ([]domain.Trek, error)
	GetTrekByID(ctx context.Context, id int64) (*domain.Trek, error)
	GetTrekBySlug(ctx context.Context, slug string) (*domain.Trek, error)

	ListPackages(ctx context.Context, filter repository.PackageFilter) ([]domain.TravelPackage, error)
	GetPackageByID(ctx context.Context, id int64) (*domain.TravelPackage, error)
	GetPackageBySlug(ctx context.Context, slug string) (*domain.TravelPackage, error)
}

type Cache interface {
	GetTreks(ctx context.Context) ([]domain.Trek, error)
	SetTreks(ctx context.Context, treks []domain.Trek) error
	GetPackages(ctx context.Context) ([]domain.TravelPackage, error)
	SetPackages(ctx context.Context, packages []domain.TravelPackage) error
}

type CatalogService struct {
	repo  repository.CatalogRepository
	cache Cache
}

func NewCatalogService(repo repository.CatalogRepository, cache Cache) *CatalogService {
	return &CatalogService{repo: repo, cache: cache}
}

// ListTreks applies exact-match AND filtering. Only the unfiltered list is
// served through the cache; filtered queries always hit the repository.
func (s *CatalogService) ListTreks(ctx context.Context, filter repository.TrekFilter) ([]domain.Trek, error) {
	if filter.Empty() && s.cache != nil {
		if cached, err := s.cache.GetTreks(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	treks, err := s.repo.ListTreks(ctx, filter)
	if err != nil {
		return nil, err
	}
	if filter.Empty() && s.cache != nil {
		_ = s.cache.SetTreks(ctx, treks)
	}
	return treks, nil
}

func (s *CatalogService) FeaturedTreks(ctx context.Context) ([]domain.Trek, error) {
	return s.repo.FeaturedTreks(ctx, featuredCount)
}

func (s *CatalogService) GetTrekByID(ctx context.Context, id int64) (*domain.Trek, error) {
	return s.repo.GetTrekByID(ctx, id)
}

func (s *CatalogService) GetTrekBySlug(ctx context.Context, slug string) (*domain.Trek, error) {
	return s.repo.GetTrekBySlug(ctx, slug)
}

func (s *CatalogService) ListPackages(ctx context.Context, filter repository.PackageFilter) ([]domain.TravelPackage, error) {
	if filter.Empty() && s.cache != nil {
		if cached, err := s.cache.GetPackages(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	packages, err := s.repo.ListPackages(ctx, filter)
	if err != nil {
		return nil, err
	}
	if filter.Empty() && s.cache != nil {
		_ = s.cache.SetPackages(ctx, packages)
	}
	return packages, nil
}

func (s *CatalogService) GetPackageByID(ctx context.Context, id int64) (*domain.TravelPackage, error) {
	return s.repo.GetPackageByID(ctx, id)
}

func (s *CatalogService) GetPackageBySlug(ctx context.Context, slug string) (*domain.TravelPackage, error) {
	return s.repo.GetPackageBySlug(ctx, slug)
}

var _ CatalogUseCase = (*CatalogService)(nil)
