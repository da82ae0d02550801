// Package pg implements the waitlist persistence contract on PostgreSQL.
package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"creatorum.org/internal/ids"
	"creatorum.org/internal/waitlist"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

var _ waitlist.Service = (*Store)(nil)

func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	// Tuned pool defaults; adjust under load tests
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return &Store{db: db}, nil
}

// NewStore wraps an existing connection pool. Used by tests.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Create(ctx context.Context, in waitlist.CreateInput) (waitlist.Entry, error) {
	id := ids.New()
	goals, err := json.Marshal(in.Goals)
	if err != nil {
		return waitlist.Entry{}, err
	}

	var created time.Time
	err = s.db.QueryRowContext(ctx, `
		insert into waitlist(id, full_name, email, role, goals)
		values ($1,$2,$3,$4,$5)
		returning created_at
	`, id, in.FullName, in.Email, in.Role, goals).Scan(&created)
	if err != nil {
		if isUniqueViolation(err) {
			return waitlist.Entry{}, waitlist.ErrDuplicateEmail
		}
		return waitlist.Entry{}, err
	}

	return waitlist.Entry{
		ID:        id,
		CreatedAt: created,
		FullName:  in.FullName,
		Email:     in.Email,
		Role:      in.Role,
		Goals:     in.Goals,
	}, nil
}

func (s *Store) List(ctx context.Context, limit, offset int) ([]waitlist.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		select id, created_at, full_name, email, role, goals
		from waitlist
		order by created_at desc
		limit $1 offset $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []waitlist.Entry{}
	for rows.Next() {
		var entry waitlist.Entry
		var goals []byte
		if err := rows.Scan(&entry.ID, &entry.CreatedAt, &entry.FullName, &entry.Email, &entry.Role, &goals); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(goals, &entry.Goals); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `select count(*) from waitlist`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return false
}
