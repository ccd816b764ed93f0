package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"secreport/internal/report"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Store keeps the latest report snapshot in SQLite.
// Each Write replaces the previous snapshot; there is no history.
type Store struct {
	db   *sql.DB
	path string
}

// Attacker is a flagged IP of the latest snapshot
type Attacker struct {
	IP           string
	FailedLogins int
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	query := `
	CREATE TABLE IF NOT EXISTS report_snapshot (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		run_id TEXT NOT NULL,
		generated_at TEXT NOT NULL,
		failures INTEGER NOT NULL,
		document TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS flagged_ips (
		ip TEXT PRIMARY KEY,
		failed_logins INTEGER NOT NULL
	);`
	if _, err := db.Exec(query); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize snapshot schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Destination returns the database path
func (s *Store) Destination() string {
	return s.path
}

// Write replaces the stored snapshot with r
func (s *Store) Write(ctx context.Context, r report.SecurityReport) error {
	doc, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO report_snapshot (id, run_id, generated_at, failures, document)
		VALUES (1, ?, ?, ?, ?)`,
		uuid.New().String(),
		r.GeneratedAt.Format(report.TimestampLayout),
		r.Failures(),
		string(doc),
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM flagged_ips`); err != nil {
		return fmt.Errorf("failed to clear flagged ips: %w", err)
	}

	if r.BruteForce.IsOk() {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO flagged_ips (ip, failed_logins) VALUES (?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for ip, count := range r.BruteForce.Value {
			if _, err := stmt.ExecContext(ctx, ip, count); err != nil {
				return fmt.Errorf("failed to save flagged ip %s: %w", ip, err)
			}
		}
	}

	return tx.Commit()
}

// Latest returns the stored snapshot and its run ID.
// ok is false when nothing has been stored yet.
func (s *Store) Latest(ctx context.Context) (rep report.SecurityReport, runID string, ok bool, err error) {
	var doc string
	err = s.db.QueryRowContext(ctx,
		`SELECT run_id, document FROM report_snapshot WHERE id = 1`).Scan(&runID, &doc)
	if errors.Is(err, sql.ErrNoRows) {
		return report.SecurityReport{}, "", false, nil
	}
	if err != nil {
		return report.SecurityReport{}, "", false, err
	}

	if err := json.Unmarshal([]byte(doc), &rep); err != nil {
		return report.SecurityReport{}, "", false, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return rep, runID, true, nil
}

// TopAttackers returns up to limit flagged IPs, most failures first
func (s *Store) TopAttackers(ctx context.Context, limit int) ([]Attacker, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ip, failed_logins
		FROM flagged_ips
		ORDER BY failed_logins DESC, ip ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Attacker
	for rows.Next() {
		var a Attacker
		if err := rows.Scan(&a.IP, &a.FailedLogins); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
