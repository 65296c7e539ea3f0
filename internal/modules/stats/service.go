// README: Operational stats aggregate: additive counters in a Redis hash.
// A cache, not a source of truth; Rebuild recomputes it from Postgres.
package stats

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const hashKey = "binnit:stats:dashboard"

const (
	fieldActiveCollections   = "activeCollections"
	fieldTotalWasteCollected = "totalWasteCollected"
	fieldTotalUsers          = "totalUsers"
	fieldTotalCollectors     = "totalCollectors"
	fieldCompletedPickups    = "completedPickups"
)

type Snapshot struct {
	ActiveCollections   int64   `json:"activeCollections"`
	TotalWasteCollected float64 `json:"totalWasteCollected"`
	TotalUsers          int64   `json:"totalUsers"`
	TotalCollectors     int64   `json:"totalCollectors"`
	CompletedPickups    int64   `json:"completedPickups"`
}

type Service struct {
	redis *redis.Client
	db    *pgxpool.Pool
	log   *slog.Logger
}

func NewService(rdb *redis.Client, db *pgxpool.Pool, log *slog.Logger) *Service {
	return &Service{redis: rdb, db: db, log: log}
}

// The Add* methods are fire-and-forget increments. Counter failures are
// logged and never fail the calling request.

func (s *Service) AddActive(ctx context.Context, n int64) {
	s.incr(ctx, fieldActiveCollections, n)
}

func (s *Service) AddWaste(ctx context.Context, kg float64) {
	if err := s.redis.HIncrByFloat(ctx, hashKey, fieldTotalWasteCollected, kg).Err(); err != nil {
		s.log.Warn("stats increment failed", "field", fieldTotalWasteCollected, "error", err)
	}
}

func (s *Service) AddUsers(ctx context.Context, n int64) {
	s.incr(ctx, fieldTotalUsers, n)
}

func (s *Service) AddCollectors(ctx context.Context, n int64) {
	s.incr(ctx, fieldTotalCollectors, n)
}

func (s *Service) AddCompleted(ctx context.Context, n int64) {
	s.incr(ctx, fieldCompletedPickups, n)
}

func (s *Service) incr(ctx context.Context, field string, n int64) {
	if err := s.redis.HIncrBy(ctx, hashKey, field, n).Err(); err != nil {
		s.log.Warn("stats increment failed", "field", field, "error", err)
	}
}

func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	vals, err := s.redis.HGetAll(ctx, hashKey).Result()
	if err != nil {
		return Snapshot{}, err
	}
	var snap Snapshot
	snap.ActiveCollections, _ = strconv.ParseInt(vals[fieldActiveCollections], 10, 64)
	snap.TotalWasteCollected, _ = strconv.ParseFloat(vals[fieldTotalWasteCollected], 64)
	snap.TotalUsers, _ = strconv.ParseInt(vals[fieldTotalUsers], 10, 64)
	snap.TotalCollectors, _ = strconv.ParseInt(vals[fieldTotalCollectors], 10, 64)
	snap.CompletedPickups, _ = strconv.ParseInt(vals[fieldCompletedPickups], 10, 64)
	return snap, nil
}

// Rebuild recomputes every counter from the backing collections and
// overwrites the hash. Safe to run at any time; counters are only a cache.
func (s *Service) Rebuild(ctx context.Context) error {
	var snap Snapshot
	err := s.db.QueryRow(ctx, `
		SELECT count(*) FILTER (WHERE status IN ('PENDING','CONFIRMED','AWAITING_ADMIN_APPROVAL','ACCEPTED','ON_THE_WAY','REACHED','PICKED_UP')),
		       COALESCE(SUM(COALESCE(actual_weight_kg, weight_kg)) FILTER (WHERE status <> 'CANCELLED'), 0),
		       count(*) FILTER (WHERE status = 'COMPLETED')
		FROM pickups`,
	).Scan(&snap.ActiveCollections, &snap.TotalWasteCollected, &snap.CompletedPickups)
	if err != nil {
		return err
	}
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&snap.TotalUsers); err != nil {
		return err
	}
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM collectors`).Scan(&snap.TotalCollectors); err != nil {
		return err
	}

	return s.redis.HSet(ctx, hashKey,
		fieldActiveCollections, snap.ActiveCollections,
		fieldTotalWasteCollected, snap.TotalWasteCollected,
		fieldTotalUsers, snap.TotalUsers,
		fieldTotalCollectors, snap.TotalCollectors,
		fieldCompletedPickups, snap.CompletedPickups,
	).Err()
}
