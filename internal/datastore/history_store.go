package datastore

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/henrykdz/pathment/internal/common"
	"github.com/henrykdz/pathment/internal/models"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS scan_sessions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL UNIQUE,
	start_time INTEGER NOT NULL,
	end_time INTEGER,
	status TEXT NOT NULL,
	target_source TEXT NOT NULL,
	num_inputs INTEGER NOT NULL DEFAULT 0,
	num_pathments INTEGER NOT NULL DEFAULT 0,
	new_pathments INTEGER NOT NULL DEFAULT 0,
	log_summary TEXT
);
CREATE TABLE IF NOT EXISTS scan_pathments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_pk INTEGER NOT NULL REFERENCES scan_sessions(id) ON DELETE CASCADE,
	type TEXT NOT NULL,
	protocol TEXT NOT NULL,
	title TEXT,
	address TEXT NOT NULL,
	uri TEXT,
	canonical TEXT,
	source TEXT,
	interesting INTEGER NOT NULL DEFAULT 0,
	scan_timestamp INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_scan_pathments_session ON scan_pathments(session_pk);
CREATE INDEX IF NOT EXISTS idx_scan_sessions_target ON scan_sessions(target_source, start_time);
`

// HistoryStore keeps scan sessions and their Pathments in SQLite.
type HistoryStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewHistoryStore opens (or creates) the database at path and ensures the
// schema exists.
func NewHistoryStore(path string, logger zerolog.Logger) (*HistoryStore, error) {
	logger = logger.With().Str("component", "HistoryStore").Logger()

	if path == "" {
		return nil, common.NewValidationError("sqlite_path", path, "history database path is not configured")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, common.WrapErrorf(err, "failed to create history database directory %s", filepath.Dir(path))
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, common.WrapErrorf(err, "sql.Open failed for %s", path)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	store := &HistoryStore{db: db, logger: logger}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Debug().Str("path", path).Msg("History database ready")
	return store, nil
}

func (s *HistoryStore) initSchema() error {
	if _, err := s.db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		return common.WrapError(err, "failed to enable foreign keys")
	}
	if _, err := s.db.Exec(historySchema); err != nil {
		return common.WrapError(err, "failed to initialize history schema")
	}
	return nil
}

// Close closes the database connection.
func (s *HistoryStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordScanStart inserts a session with status STARTED and returns its row id.
func (s *HistoryStore) RecordScanStart(ctx context.Context, sessionID, targetSource string, numInputs int, start time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO scan_sessions (session_id, start_time, status, target_source, num_inputs) VALUES (?, ?, ?, ?, ?)`,
		sessionID, start.UnixMilli(), models.SessionStarted, targetSource, numInputs)
	if err != nil {
		return 0, common.WrapError(err, "failed to insert scan session")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, common.WrapError(err, "failed to get session row id")
	}
	s.logger.Debug().Int64("db_id", id).Str("session_id", sessionID).Msg("Recorded scan start")
	return id, nil
}

// SaveRecords stores the records of a session in one transaction.
func (s *HistoryStore) SaveRecords(ctx context.Context, dbID int64, records []models.PathmentRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.WrapError(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO scan_pathments
		(session_pk, type, protocol, title, address, uri, canonical, source, interesting, scan_timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return common.WrapError(err, "failed to prepare insert")
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, dbID, r.Type, r.Protocol, r.Title, r.Address, r.URI,
			r.Canonical, r.Source, r.Interesting, r.ScanTimestamp); err != nil {
			return common.WrapErrorf(err, "failed to store %s", r.Address)
		}
	}
	return tx.Commit()
}

// UpdateScanCompletion finishes a session.
func (s *HistoryStore) UpdateScanCompletion(ctx context.Context, dbID int64, end time.Time, status, logSummary string, numPathments, newPathments int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE scan_sessions SET end_time = ?, status = ?, log_summary = ?, num_pathments = ?, new_pathments = ? WHERE id = ?`,
		end.UnixMilli(), status, sql.NullString{String: logSummary, Valid: logSummary != ""}, numPathments, newPathments, dbID)
	if err != nil {
		return common.WrapErrorf(err, "failed to update scan completion for ID %d", dbID)
	}
	s.logger.Debug().Int64("db_id", dbID).Str("status", status).Msg("Updated scan completion")
	return nil
}

const sessionColumns = `id, session_id, start_time, end_time, status, target_source, num_inputs, num_pathments, new_pathments, log_summary`

// ListSessions returns the most recent sessions first. limit <= 0 returns all.
func (s *HistoryStore) ListSessions(ctx context.Context, limit int) ([]models.ScanSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM scan_sessions ORDER BY start_time DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.WrapError(err, "failed to list scan sessions")
	}
	defer rows.Close()

	var sessions []models.ScanSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// GetSession looks a session up by its session id.
func (s *HistoryStore) GetSession(ctx context.Context, sessionID string) (models.ScanSession, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM scan_sessions WHERE session_id = ?`, sessionID)
	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ScanSession{}, common.WrapErrorf(common.ErrNotFound, "scan session %s", sessionID)
	}
	return session, err
}

// LoadRecords returns the stored records of a session in insertion order.
func (s *HistoryStore) LoadRecords(ctx context.Context, sessionID string) ([]models.PathmentRecord, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.loadRecordsByPK(ctx, session.ID)
}

// LatestCompletedRecords returns the records of the newest completed session
// for targetSource, excluding excludeSessionID. It returns nil when there is
// no such session.
func (s *HistoryStore) LatestCompletedRecords(ctx context.Context, targetSource, excludeSessionID string) ([]models.PathmentRecord, error) {
	var pk int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM scan_sessions WHERE target_source = ? AND status = ? AND session_id != ?
		 ORDER BY start_time DESC, id DESC LIMIT 1`,
		targetSource, models.SessionCompleted, excludeSessionID).Scan(&pk)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, common.WrapError(err, "failed to find previous session")
	}
	return s.loadRecordsByPK(ctx, pk)
}

func (s *HistoryStore) loadRecordsByPK(ctx context.Context, pk int64) ([]models.PathmentRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT type, protocol, title, address, uri, canonical, source, interesting, scan_timestamp
		 FROM scan_pathments WHERE session_pk = ? ORDER BY id`, pk)
	if err != nil {
		return nil, common.WrapError(err, "failed to load session records")
	}
	defer rows.Close()

	records := []models.PathmentRecord{}
	for rows.Next() {
		var r models.PathmentRecord
		var title, uri, canonical, src sql.NullString
		if err := rows.Scan(&r.Type, &r.Protocol, &title, &r.Address, &uri, &canonical, &src, &r.Interesting, &r.ScanTimestamp); err != nil {
			return nil, common.WrapError(err, "failed to read session record")
		}
		r.Title, r.URI, r.Canonical, r.Source = title.String, uri.String, canonical.String, src.String
		records = append(records, r)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (models.ScanSession, error) {
	var session models.ScanSession
	var start int64
	var end sql.NullInt64
	var summary sql.NullString

	err := row.Scan(&session.ID, &session.SessionID, &start, &end, &session.Status, &session.TargetSource,
		&session.NumInputs, &session.NumPathments, &session.NewPathments, &summary)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return session, err
		}
		return session, common.WrapError(err, "failed to read scan session")
	}

	session.StartTime = time.UnixMilli(start)
	if end.Valid {
		session.EndTime = time.UnixMilli(end.Int64)
	}
	session.LogSummary = summary.String
	return session, nil
}
