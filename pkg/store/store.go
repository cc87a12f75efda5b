// Package store keeps submitted leads in a local SQLite database. Leads are
// keyed by the hash of the normalised email so re-submissions update the
// existing row.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/saral-ai/landing/pkg/models"
	"github.com/saral-ai/landing/pkg/utils"
)

var ErrNotFound = errors.New("lead not found")

// fixed width so submitted_at sorts as text
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const schema = `
CREATE TABLE IF NOT EXISTS leads (
	contact_hash TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	email        TEXT NOT NULL,
	company      TEXT NOT NULL DEFAULT '',
	role         TEXT NOT NULL DEFAULT '',
	team_size    TEXT NOT NULL DEFAULT '',
	mobile       TEXT NOT NULL DEFAULT '',
	variant      TEXT NOT NULL,
	submitted_at TEXT NOT NULL,
	submissions  INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_leads_submitted_at ON leads(submitted_at);
`

// Lead is a stored lead row
type Lead struct {
	Hash        string
	Submissions int
	models.LeadFormData
}

// Store wraps the database connection
type Store struct {
	conn *sql.DB
}

// Open opens (creating if needed) the lead database at path. ":memory:"
// gives a private in-memory database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// one writer; also keeps an in-memory database on a single connection
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.conn.Close()
}

// Save inserts the lead or updates the row for the same email. It reports
// whether this was the first submission for that email.
func (s *Store) Save(ctx context.Context, lead models.LeadFormData) (bool, error) {
	hash := utils.HashContact(lead.Email)

	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO leads (contact_hash, name, email, company, role, team_size, mobile, variant, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(contact_hash) DO UPDATE SET
			name = excluded.name,
			company = excluded.company,
			role = excluded.role,
			team_size = excluded.team_size,
			mobile = excluded.mobile,
			variant = excluded.variant,
			submitted_at = excluded.submitted_at,
			submissions = leads.submissions + 1`,
		hash, lead.Name, lead.Email, lead.Company, lead.Role, lead.TeamSize, lead.Mobile,
		lead.Variant, lead.SubmittedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return false, fmt.Errorf("save lead: %w", err)
	}

	var submissions int
	if err := s.conn.QueryRowContext(ctx,
		`SELECT submissions FROM leads WHERE contact_hash = ?`, hash).Scan(&submissions); err != nil {
		return false, fmt.Errorf("read lead: %w", err)
	}
	return submissions == 1, nil
}

// Get returns the lead stored for an email address
func (s *Store) Get(ctx context.Context, email string) (Lead, error) {
	row := s.conn.QueryRowContext(ctx, selectLead+` WHERE contact_hash = ?`, utils.HashContact(email))
	lead, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return lead, err
}

// List returns the most recently submitted leads first
func (s *Store) List(ctx context.Context, limit int) ([]Lead, error) {
	rows, err := s.conn.QueryContext(ctx, selectLead+` ORDER BY submitted_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var leads []Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

const selectLead = `SELECT contact_hash, name, email, company, role, team_size, mobile, variant, submitted_at, submissions FROM leads`

type scanner interface {
	Scan(dest ...any) error
}

func scanLead(row scanner) (Lead, error) {
	var (
		lead        Lead
		submittedAt string
	)
	err := row.Scan(&lead.Hash, &lead.Name, &lead.Email, &lead.Company, &lead.Role,
		&lead.TeamSize, &lead.Mobile, &lead.Variant, &submittedAt, &lead.Submissions)
	if err != nil {
		return Lead{}, err
	}
	lead.SubmittedAt, err = time.Parse(timeLayout, submittedAt)
	if err != nil {
		return Lead{}, fmt.Errorf("parse submitted_at: %w", err)
	}
	return lead, nil
}
