package accounts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rlucioni/courtbot/internal/db"
	"github.com/rlucioni/courtbot/internal/domain/reservation"
	"github.com/rlucioni/courtbot/internal/infrastructure/crypto"
)

type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
	Query(ctx context.Context, sql string, args ...any) (db.Rows, error)
}

// Account is a stored account without its password.
type Account struct {
	ID        string
	Username  string
	Position  int
	CreatedAt time.Time
}

// Repo keeps accounts in Postgres with passwords sealed by aead.
type Repo struct {
	db   Querier
	aead *crypto.AEAD
	now  func() time.Time
}

func NewRepo(q Querier, aead *crypto.AEAD) *Repo {
	return &Repo{db: q, aead: aead, now: time.Now}
}

// Add stores an account, or replaces the password and position of an
// existing one with the same username.
func (r *Repo) Add(ctx context.Context, username, password string, position int) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return fmt.Errorf("username and password are required")
	}
	ct, err := r.aead.EncryptToString(password, username)
	if err != nil {
		return fmt.Errorf("encrypt password: %w", err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO accounts (id, username, password_ct, position, created_at) VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (username) DO UPDATE SET password_ct=EXCLUDED.password_ct, position=EXCLUDED.position
	`, uuid.NewString(), username, ct, position, r.now().UTC())
	return db.WrapNotFound(err)
}

func (r *Repo) Remove(ctx context.Context, username string) error {
	n, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE username=$1`, username)
	if err != nil {
		return db.WrapNotFound(err)
	}
	if n == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *Repo) List(ctx context.Context) ([]Account, error) {
	rows, err := r.db.Query(ctx, `SELECT id, username, position, created_at FROM accounts ORDER BY position, created_at`)
	if err != nil {
		return nil, db.WrapNotFound(err)
	}
	defer rows.Close()

	var out []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Username, &a.Position, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *Repo) Credentials(ctx context.Context) ([]reservation.Credentials, error) {
	rows, err := r.db.Query(ctx, `SELECT username, password_ct FROM accounts ORDER BY position, created_at`)
	if err != nil {
		return nil, db.WrapNotFound(err)
	}
	defer rows.Close()

	var out []reservation.Credentials
	for rows.Next() {
		var username, ct string
		if err := rows.Scan(&username, &ct); err != nil {
			return nil, err
		}
		pw, err := r.aead.DecryptString(ct, username)
		if err != nil {
			return nil, fmt.Errorf("decrypt password for %s: %w", username, err)
		}
		out = append(out, reservation.Credentials{Username: username, Password: pw})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNoAccounts
	}
	return out, nil
}
