// README: Collector store backed by PostgreSQL, with Redis GEO for live presence.
package collector

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/ayishathul-rinsha/Binnit/internal/types"
)

const geoKey = "binnit:collectors:geo"

type DBStore struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func NewStore(db *pgxpool.Pool, rdb *redis.Client) *DBStore {
	return &DBStore{db: db, redis: rdb}
}

func (s *DBStore) Create(ctx context.Context, c *Collector) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO collectors (
			id, name, email, phone, photo_url, id_proof_url,
			vehicle_type, vehicle_number, registration_doc_url,
			max_weight_kg, current_load_kg, is_online,
			rating, rating_sum, total_ratings, total_pickups,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,0,false,0,0,0,0,$11,$11)`,
		string(c.ID), c.Name, c.Email, c.Phone, c.PhotoURL, c.IDProofURL,
		c.Vehicle.Type, c.Vehicle.Number, c.Vehicle.RegistrationDocURL,
		c.MaxWeightKg, c.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrAlreadyRegistered
	}
	if err != nil {
		return err
	}
	if err := insertBins(ctx, tx, c.ID, c.Bins); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *DBStore) Get(ctx context.Context, id types.ID) (*Collector, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, email, phone, photo_url, id_proof_url,
		       vehicle_type, vehicle_number, registration_doc_url,
		       max_weight_kg, current_load_kg, is_online,
		       rating, rating_sum, total_ratings, total_pickups,
		       created_at, updated_at
		FROM collectors
		WHERE id = $1`, string(id),
	)

	var c Collector
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.PhotoURL, &c.IDProofURL,
		&c.Vehicle.Type, &c.Vehicle.Number, &c.Vehicle.RegistrationDocURL,
		&c.MaxWeightKg, &c.CurrentLoadKg, &c.IsOnline,
		&c.Rating, &c.RatingSum, &c.TotalRatings, &c.TotalPickups,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT waste_type, capacity_kg, current_kg
		FROM collector_bins
		WHERE collector_id = $1`, string(id),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var wt string
		var bin Bin
		if err := rows.Scan(&wt, &bin.CapacityKg, &bin.CurrentKg); err != nil {
			return nil, err
		}
		if c.Bins == nil {
			c.Bins = map[string]Bin{}
		}
		c.Bins[wt] = bin
	}
	return &c, rows.Err()
}

// VehicleReset carries the full ledger reset applied when the vehicle class
// changes: new class, new ceiling, zero-filled bins, zero load.
type VehicleReset struct {
	Vehicle     Vehicle
	MaxWeightKg float64
	Bins        map[string]Bin
}

type ProfileUpdate struct {
	Name     *string
	Phone    *string
	PhotoURL *string
	// VehicleNumber / RegistrationDocURL update the current vehicle in place.
	VehicleNumber      *string
	RegistrationDocURL *string
	// VehicleReset, when set, wins over the in-place fields.
	VehicleReset *VehicleReset
}

func (s *DBStore) UpdateProfile(ctx context.Context, id types.ID, upd ProfileUpdate) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE collectors
		SET name = COALESCE($2, name),
		    phone = COALESCE($3, phone),
		    photo_url = COALESCE($4, photo_url),
		    vehicle_number = COALESCE($5, vehicle_number),
		    registration_doc_url = COALESCE($6, registration_doc_url),
		    updated_at = now()
		WHERE id = $1`,
		string(id), upd.Name, upd.Phone, upd.PhotoURL, upd.VehicleNumber, upd.RegistrationDocURL,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if r := upd.VehicleReset; r != nil {
		_, err = tx.Exec(ctx, `
			UPDATE collectors
			SET vehicle_type = $2,
			    vehicle_number = COALESCE(NULLIF($3, ''), vehicle_number),
			    registration_doc_url = COALESCE(NULLIF($4, ''), registration_doc_url),
			    max_weight_kg = $5,
			    current_load_kg = 0,
			    updated_at = now()
			WHERE id = $1`,
			string(id), r.Vehicle.Type, r.Vehicle.Number, r.Vehicle.RegistrationDocURL, r.MaxWeightKg,
		)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM collector_bins WHERE collector_id = $1`, string(id)); err != nil {
			return err
		}
		if err := insertBins(ctx, tx, id, r.Bins); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (s *DBStore) SetAvailability(ctx context.Context, id types.ID, online bool) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE collectors SET is_online = $2, updated_at = now() WHERE id = $1`,
		string(id), online,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	if !online && s.redis != nil {
		// Going offline removes the collector from the live presence set.
		_ = s.redis.ZRem(ctx, geoKey, string(id)).Err()
	}
	return nil
}

func (s *DBStore) SetLocation(ctx context.Context, id types.ID, lat, lng float64) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE collectors
		SET location_lat = $2, location_lng = $3, location_updated_at = now(), updated_at = now()
		WHERE id = $1`,
		string(id), lat, lng,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	if s.redis != nil {
		_ = s.redis.GeoAdd(ctx, geoKey, &redis.GeoLocation{
			Name:      string(id),
			Latitude:  lat,
			Longitude: lng,
		}).Err()
	}
	return nil
}

// AddRating folds one rating into the running (sum, count) pair. The stored
// average is rounded to one decimal in the same statement so concurrent
// ratings never clobber each other.
func (s *DBStore) AddRating(ctx context.Context, id types.ID, value int) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE collectors
		SET rating_sum = rating_sum + $2,
		    total_ratings = total_ratings + 1,
		    rating = ROUND((rating_sum + $2)::numeric / (total_ratings + 1), 1)::float8,
		    updated_at = now()
		WHERE id = $1`,
		string(id), value,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListBins is the fleet-wide bin activity view, fullest first.
func (s *DBStore) ListBins(ctx context.Context) ([]BinStatus, error) {
	rows, err := s.db.Query(ctx, `
		SELECT collector_id, waste_type, capacity_kg, current_kg,
		       COALESCE(ROUND((current_kg / NULLIF(capacity_kg, 0) * 100)::numeric, 1)::float8, 0)
		FROM collector_bins
		ORDER BY current_kg / NULLIF(capacity_kg, 0) DESC NULLS LAST`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BinStatus
	for rows.Next() {
		var b BinStatus
		if err := rows.Scan(&b.CollectorID, &b.WasteType, &b.CapacityKg, &b.CurrentKg, &b.FillPercent); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func insertBins(ctx context.Context, tx pgx.Tx, id types.ID, bins map[string]Bin) error {
	for wt, bin := range bins {
		_, err := tx.Exec(ctx, `
			INSERT INTO collector_bins (collector_id, waste_type, capacity_kg, current_kg)
			VALUES ($1, $2, $3, $4)`,
			string(id), wt, bin.CapacityKg, bin.CurrentKg,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
