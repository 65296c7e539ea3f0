// README: Identity store backed by PostgreSQL. Role lookup checks membership
// in the admins and collectors collections, defaulting to user.
package identity

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ayishathul-rinsha/Binnit/internal/types"
)

type DBStore struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) Role(ctx context.Context, uid types.ID) (Role, error) {
	var isAdmin, isCollector bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM admins WHERE id = $1),
		       EXISTS (SELECT 1 FROM collectors WHERE id = $1)`,
		string(uid),
	).Scan(&isAdmin, &isCollector)
	if err != nil {
		return "", err
	}
	if isAdmin {
		return RoleAdmin, nil
	}
	if isCollector {
		return RoleCollector, nil
	}
	return RoleUser, nil
}

func (s *DBStore) Get(ctx context.Context, uid types.ID) (*User, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, email, phone, address, photo_url, created_at, updated_at
		FROM users WHERE id = $1`, string(uid),
	)
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Address, &u.PhotoURL, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Upsert creates the profile on first write and reports whether a new row was
// created, so the caller can bump the user counter exactly once.
func (s *DBStore) Upsert(ctx context.Context, u *User) (created bool, err error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO users (id, name, email, phone, address, photo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		ON CONFLICT (id) DO UPDATE
		SET name = COALESCE(NULLIF(EXCLUDED.name, ''), users.name),
		    email = COALESCE(NULLIF(EXCLUDED.email, ''), users.email),
		    phone = COALESCE(NULLIF(EXCLUDED.phone, ''), users.phone),
		    address = COALESCE(NULLIF(EXCLUDED.address, ''), users.address),
		    photo_url = COALESCE(NULLIF(EXCLUDED.photo_url, ''), users.photo_url),
		    updated_at = now()
		RETURNING (xmax = 0)`,
		string(u.ID), u.Name, u.Email, u.Phone, u.Address, u.PhotoURL,
	)
	if err := row.Scan(&created); err != nil {
		return false, err
	}
	return created, nil
}

// ListAddresses returns the user's saved addresses, newest first.
func (s *DBStore) ListAddresses(ctx context.Context, uid types.ID) ([]Address, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, label, full_address, lat, lng, is_default, created_at
		FROM user_addresses WHERE user_id = $1
		ORDER BY created_at DESC`, string(uid),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Address
	for rows.Next() {
		var a Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.Label, &a.FullAddress, &a.Lat, &a.Lng, &a.IsDefault, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// AddAddress inserts a saved address. A new default clears the user's previous
// default in the same transaction so at most one row keeps the flag.
func (s *DBStore) AddAddress(ctx context.Context, a *Address) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if a.IsDefault {
		_, err := tx.Exec(ctx, `
			UPDATE user_addresses SET is_default = false
			WHERE user_id = $1 AND is_default`, string(a.UserID),
		)
		if err != nil {
			return err
		}
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO user_addresses (id, user_id, label, full_address, lat, lng, is_default, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())`,
		string(a.ID), string(a.UserID), a.Label, a.FullAddress, a.Lat, a.Lng, a.IsDefault,
	)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ListAccounts merges users and collectors for the admin view, newest first.
func (s *DBStore) ListAccounts(ctx context.Context) ([]Account, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, email, phone, 'user' AS role, created_at FROM users
		UNION ALL
		SELECT id, name, email, phone, 'collector' AS role, created_at FROM collectors
		ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.Role, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
