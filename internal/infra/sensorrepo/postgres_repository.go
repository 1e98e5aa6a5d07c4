package sensorrepo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/1DS22AIOO3adarsh/Clear-sky-challenge/internal/domain/pollution"
)

// PostgresRepository reads sensor readings from postgres using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Samples returns the latest reading per station. The DISTINCT ON ordering
// does the per-station collapse that LatestPerStation performs for file
// sources; rows missing crucial fields are filtered in SQL.
func (r *PostgresRepository) Samples(ctx context.Context) ([]pollution.SensorSample, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT ON (station_name) station_name, latitude, longitude, pm25
		FROM sensor_readings
		WHERE pm25 IS NOT NULL AND latitude IS NOT NULL AND longitude IS NOT NULL
		ORDER BY station_name, recorded_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []pollution.SensorSample
	for rows.Next() {
		var s pollution.SensorSample
		if err := rows.Scan(&s.Station, &s.Latitude, &s.Longitude, &s.Value); err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}

var _ pollution.SampleSource = (*PostgresRepository)(nil)
