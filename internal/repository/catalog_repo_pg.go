package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nived-gurung/trekbooking/internal/domain"
)

// TrekFilter holds optional exact-match predicates; empty string means
// no constraint on that column.
type TrekFilter struct {
	Region     string
	Difficulty string
}

func (f TrekFilter) Empty() bool { return f.Region == "" && f.Difficulty == "" }

type PackageFilter struct {
	Destination string
	PackageType string
}

func (f PackageFilter) Empty() bool { return f.Destination == "" && f.PackageType == "" }

type CatalogRepository interface {
	ListTreks(ctx context.Context, filter TrekFilter) ([]domain.Trek, error)
	FeaturedTreks(ctx context.Context, limit int) ([]domain.Trek, error)
	GetTrekByID(ctx context.Context, id int64) (*domain.Trek, error)
	GetTrekBySlug(ctx context.Context, slug string) (*domain.Trek, error)

	ListPackages(ctx context.Context, filter PackageFilter) ([]domain.TravelPackage, error)
	GetPackageByID(ctx context.Context, id int64) (*domain.TravelPackage, error)
	GetPackageBySlug(ctx context.Context, slug string) (*domain.TravelPackage, error)

	// Seed inserts the given catalog entries inside one transaction,
	// skipping any slug that already exists for the same variant.
	// Returns the number of rows actually inserted.
	Seed(ctx context.Context, treks []domain.Trek, packages []domain.TravelPackage) (int, error)
}

const trekColumns = `id, name, slug, region, duration, difficulty, max_altitude, price_cents, description, itinerary, includes, excludes, image_url, created_at`

const packageColumns = `id, name, slug, destination, duration, price_cents, description, itinerary, includes, excludes, image_url, package_type, created_at`

type PGCatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) CatalogRepository {
	return &PGCatalogRepository{db: db}
}

func (r *PGCatalogRepository) ListTreks(ctx context.Context, filter TrekFilter) ([]domain.Trek, error) {
	query := `SELECT ` + trekColumns + ` FROM treks`
	var (
		conds []string
		args  []any
	)
	if filter.Region != "" {
		args = append(args, filter.Region)
		conds = append(conds, fmt.Sprintf("region=$%d", len(args)))
	}
	if filter.Difficulty != "" {
		args = append(args, filter.Difficulty)
		conds = append(conds, fmt.Sprintf("difficulty=$%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTreks(rows)
}

func (r *PGCatalogRepository) FeaturedTreks(ctx context.Context, limit int) ([]domain.Trek, error) {
	rows, err := r.db.Query(ctx, `SELECT `+trekColumns+` FROM treks ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTreks(rows)
}

func (r *PGCatalogRepository) GetTrekByID(ctx context.Context, id int64) (*domain.Trek, error) {
	return r.getTrek(ctx, `SELECT `+trekColumns+` FROM treks WHERE id=$1`, id)
}

func (r *PGCatalogRepository) GetTrekBySlug(ctx context.Context, slug string) (*domain.Trek, error) {
	return r.getTrek(ctx, `SELECT `+trekColumns+` FROM treks WHERE slug=$1`, slug)
}

func (r *PGCatalogRepository) ListPackages(ctx context.Context, filter PackageFilter) ([]domain.TravelPackage, error) {
	query := `SELECT ` + packageColumns + ` FROM travel_packages`
	var (
		conds []string
		args  []any
	)
	if filter.Destination != "" {
		args = append(args, filter.Destination)
		conds = append(conds, fmt.Sprintf("destination=$%d", len(args)))
	}
	if filter.PackageType != "" {
		args = append(args, filter.PackageType)
		conds = append(conds, fmt.Sprintf("package_type=$%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPackages(rows)
}

func (r *PGCatalogRepository) GetPackageByID(ctx context.Context, id int64) (*domain.TravelPackage, error) {
	return r.getPackage(ctx, `SELECT `+packageColumns+` FROM travel_packages WHERE id=$1`, id)
}

func (r *PGCatalogRepository) GetPackageBySlug(ctx context.Context, slug string) (*domain.TravelPackage, error) {
	return r.getPackage(ctx, `SELECT `+packageColumns+` FROM travel_packages WHERE slug=$1`, slug)
}

func (r *PGCatalogRepository) Seed(ctx context.Context, treks []domain.Trek, packages []domain.TravelPackage) (int, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	inserted := 0
	for _, t := range treks {
		cmd, err := tx.Exec(ctx, `INSERT INTO treks (name, slug, region, duration, difficulty, max_altitude, price_cents, description, itinerary, includes, excludes, image_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (slug) DO NOTHING`,
			t.Name, t.Slug, t.Region, t.Duration, t.Difficulty, t.MaxAltitude, t.PriceCents, t.Description, t.Itinerary, t.Includes, t.Excludes, t.ImageURL)
		if err != nil {
			return 0, err
		}
		inserted += int(cmd.RowsAffected())
	}
	for _, p := range packages {
		cmd, err := tx.Exec(ctx, `INSERT INTO travel_packages (name, slug, destination, duration, price_cents, description, itinerary, includes, excludes, image_url, package_type)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (slug) DO NOTHING`,
			p.Name, p.Slug, p.Destination, p.Duration, p.PriceCents, p.Description, p.Itinerary, p.Includes, p.Excludes, p.ImageURL, p.PackageType)
		if err != nil {
			return 0, err
		}
		inserted += int(cmd.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *PGCatalogRepository) getTrek(ctx context.Context, query string, arg any) (*domain.Trek, error) {
	row := r.db.QueryRow(ctx, query, arg)
	var t domain.Trek
	if err := scanTrek(row, &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *PGCatalogRepository) getPackage(ctx context.Context, query string, arg any) (*domain.TravelPackage, error) {
	row := r.db.QueryRow(ctx, query, arg)
	var p domain.TravelPackage
	if err := scanPackage(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func scanTrek(row pgx.Row, t *domain.Trek) error {
	return row.Scan(&t.ID, &t.Name, &t.Slug, &t.Region, &t.Duration, &t.Difficulty, &t.MaxAltitude, &t.PriceCents, &t.Description, &t.Itinerary, &t.Includes, &t.Excludes, &t.ImageURL, &t.CreatedAt)
}

func scanTreks(rows pgx.Rows) ([]domain.Trek, error) {
	treks := make([]domain.Trek, 0)
	for rows.Next() {
		var t domain.Trek
		if err := scanTrek(rows, &t); err != nil {
			return nil, err
		}
		treks = append(treks, t)
	}
	return treks, rows.Err()
}

func scanPackage(row pgx.Row, p *domain.TravelPackage) error {
	return row.Scan(&p.ID, &p.Name, &p.Slug, &p.Destination, &p.Duration, &p.PriceCents, &p.Description, &p.Itinerary, &p.Includes, &p.Excludes, &p.ImageURL, &p.PackageType, &p.CreatedAt)
}

func scanPackages(rows pgx.Rows) ([]domain.TravelPackage, error) {
	packages := make([]domain.TravelPackage, 0)
	for rows.Next() {
		var p domain.TravelPackage
		if err := scanPackage(rows, &p); err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	return packages, rows.Err()
}

var _ CatalogRepository = (*PGCatalogRepository)(nil)
