package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/fitpass/internal/core/domain"
)

// GymRepo implements ports.GymRepository with pgx and PostGIS.
type GymRepo struct {
	db *DB
}

// NewGymRepo creates a new GymRepo.
func NewGymRepo(db *DB) *GymRepo {
	return &GymRepo{db: db}
}

// Create inserts a gym.
func (r *GymRepo) Create(ctx context.Context, g *domain.Gym) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO gyms (title, description, phone, location)
		VALUES ($1, $2, $3, ST_SetSRID(ST_MakePoint($4, $5), 4326)::geography)
		RETURNING id, created_at
	`, g.Title, g.Description, g.Phone, g.Location.Lon, g.Location.Lat).
		Scan(&g.ID, &g.CreatedAt)
}

// GetByID returns a gym by UUID.
func (r *GymRepo) GetByID(ctx context.Context, id string) (*domain.Gym, error) {
	var g domain.Gym
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, title, COALESCE(description, ''), COALESCE(phone, ''),
		       ST_Y(location::geometry) as lat,
		       ST_X(location::geometry) as lon,
		       created_at
		FROM gyms WHERE id = $1
	`, id).Scan(
		&g.ID, &g.Title, &g.Description, &g.Phone,
		&g.Location.Lat, &g.Location.Lon, &g.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrResourceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// SearchByTitle performs fuzzy + substring search on gym titles and returns
// one page plus the total match count.
func (r *GymRepo) SearchByTitle(ctx context.Context, query string, limit, offset int) ([]domain.Gym, int, error) {
	var total int
	err := r.db.Pool.QueryRow(ctx, `
		SELECT count(*) FROM gyms
		WHERE title ILIKE '%' || $1 || '%' OR title % $1
	`, query).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, title, COALESCE(description, ''), COALESCE(phone, ''),
		       ST_Y(location::geometry) as lat,
		       ST_X(location::geometry) as lon,
		       created_at
		FROM gyms
		WHERE title ILIKE '%' || $1 || '%' OR title % $1
		ORDER BY similarity(title, $1) DESC, title
		LIMIT $2 OFFSET $3
	`, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	gyms, err := scanGyms(rows, false)
	return gyms, total, err
}

// FindNearby returns gyms within radiusMeters using PostGIS ST_DWithin,
// closest first, with the computed distance attached.
func (r *GymRepo) FindNearby(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]domain.Gym, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, title, COALESCE(description, ''), COALESCE(phone, ''),
		       ST_Y(location::geometry) as lat,
		       ST_X(location::geometry) as lon,
		       created_at,
		       ST_Distance(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography) as distance
		FROM gyms
		WHERE ST_DWithin(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3)
		ORDER BY distance
		LIMIT $4
	`, lon, lat, radiusMeters, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanGyms(rows, true)
}

func scanGyms(rows pgx.Rows, withDistance bool) ([]domain.Gym, error) {
	var gyms []domain.Gym
	for rows.Next() {
		var g domain.Gym
		dest := []any{
			&g.ID, &g.Title, &g.Description, &g.Phone,
			&g.Location.Lat, &g.Location.Lon, &g.CreatedAt,
		}
		var dist float64
		if withDistance {
			dest = append(dest, &dist)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		if withDistance {
			d := dist
			g.Distance = &d
		}
		gyms = append(gyms, g)
	}
	return gyms, rows.Err()
}
