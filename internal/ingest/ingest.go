package ingest

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/nived-gurung/trekbooking/internal/domain"
	"github.com/nived-gurung/trekbooking/internal/repository"
)

// TrekSpec mirrors a fixture entry; prices are integer cents.
type TrekSpec struct {
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Region      string `yaml:"region"`
	Duration    int    `yaml:"duration"`
	Difficulty  string `yaml:"difficulty"`
	MaxAltitude int    `yaml:"max_altitude"`
	PriceCents  int64  `yaml:"price_cents"`
	Description string `yaml:"description"`
	Itinerary   string `yaml:"itinerary"`
	Includes    string `yaml:"includes"`
	Excludes    string `yaml:"excludes"`
	ImageURL    string `yaml:"image_url"`
}

type PackageSpec struct {
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Destination string `yaml:"destination"`
	Duration    int    `yaml:"duration"`
	PriceCents  int64  `yaml:"price_cents"`
	Description string `yaml:"description"`
	Itinerary   string `yaml:"itinerary"`
	Includes    string `yaml:"includes"`
	Excludes    string `yaml:"excludes"`
	ImageURL    string `yaml:"image_url"`
	PackageType string `yaml:"package_type"`
}

type Fixtures struct {
	Treks    []TrekSpec    `yaml:"treks"`
	Packages []PackageSpec `yaml:"travel_packages"`
}

func LoadFixtures(path string) (Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixtures{}, fmt.Errorf("failed to read fixtures: %w", err)
	}

	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixtures{}, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return f, nil
}

type CatalogCache interface {
	InvalidateCatalog(ctx context.Context) error
}

type Service struct {
	repo  repository.CatalogRepository
	cache CatalogCache
	log   zerolog.Logger
}

func NewService(repo repository.CatalogRepository, cache CatalogCache, log zerolog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

// Seed bulk-loads catalog entries in one transaction. A slug that already
// exists for the same variant is skipped, so re-running with the same
// fixtures inserts nothing.
func (s *Service) Seed(ctx context.Context, treks []TrekSpec, packages []PackageSpec) (int, error) {
	for _, t := range treks {
		if err := validateTrekSpec(t); err != nil {
			return 0, err
		}
	}
	for _, p := range packages {
		if err := validatePackageSpec(p); err != nil {
			return 0, err
		}
	}

	inserted, err := s.repo.Seed(ctx, toTreks(treks), toPackages(packages))
	if err != nil {
		return 0, err
	}

	if inserted > 0 && s.cache != nil {
		if err := s.cache.InvalidateCatalog(ctx); err != nil {
			s.log.Warn().Err(err).Msg("failed to invalidate catalog cache after seeding")
		}
	}

	s.log.Info().Int("inserted", inserted).Int("treks", len(treks)).Int("packages", len(packages)).Msg("catalog seeded")
	return inserted, nil
}

func validateTrekSpec(t TrekSpec) error {
	if t.Name == "" || t.Slug == "" {
		return fmt.Errorf("%w: trek name and slug are required", domain.ErrValidation)
	}
	if t.Duration <= 0 {
		return fmt.Errorf("%w: trek %q duration must be positive", domain.ErrValidation, t.Slug)
	}
	if t.PriceCents <= 0 {
		return fmt.Errorf("%w: trek %q price must be positive", domain.ErrValidation, t.Slug)
	}
	switch domain.Difficulty(t.Difficulty) {
	case domain.DifficultyEasy, domain.DifficultyModerate, domain.DifficultyDifficult:
	default:
		return fmt.Errorf("%w: trek %q has unknown difficulty %q", domain.ErrValidation, t.Slug, t.Difficulty)
	}
	return nil
}

func validatePackageSpec(p PackageSpec) error {
	if p.Name == "" || p.Slug == "" {
		return fmt.Errorf("%w: package name and slug are required", domain.ErrValidation)
	}
	if p.Duration <= 0 {
		return fmt.Errorf("%w: package %q duration must be positive", domain.ErrValidation, p.Slug)
	}
	if p.PriceCents <= 0 {
		return fmt.Errorf("%w: package %q price must be positive", domain.ErrValidation, p.Slug)
	}
	return nil
}

func toTreks(specs []TrekSpec) []domain.Trek {
	treks := make([]domain.Trek, 0, len(specs))
	for _, t := range specs {
		treks = append(treks, domain.Trek{
			Name:        t.Name,
			Slug:        t.Slug,
			Region:      t.Region,
			Duration:    t.Duration,
			Difficulty:  domain.Difficulty(t.Difficulty),
			MaxAltitude: t.MaxAltitude,
			PriceCents:  t.PriceCents,
			Description: t.Description,
			Itinerary:   t.Itinerary,
			Includes:    t.Includes,
			Excludes:    t.Excludes,
			ImageURL:    t.ImageURL,
		})
	}
	return treks
}

func toPackages(specs []PackageSpec) []domain.TravelPackage {
	packages := make([]domain.TravelPackage, 0, len(specs))
	for _, p := range specs {
		packages = append(packages, domain.TravelPackage{
			Name:        p.Name,
			Slug:        p.Slug,
			Destination: p.Destination,
			Duration:    p.Duration,
			PriceCents:  p.PriceCents,
			Description: p.Description,
			Itinerary:   p.Itinerary,
			Includes:    p.Includes,
			Excludes:    p.Excludes,
			ImageURL:    p.ImageURL,
			PackageType: p.PackageType,
		})
	}
	return packages
}
