package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ezBadminton/badmintondraw/core"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Fixed width so that the stored times sort as text
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore keeps one row per tournament with the listing
// columns next to the JSON document
type SQLiteStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewSQLiteStore(path string, logger zerolog.Logger) (*SQLiteStore, error) {
	logger.Debug().Str("path", path).Msg("opening sqlite store")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer at a time
	db.SetMaxOpenConns(1)

	if err := optimizeSQLite(db, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to optimize SQLite: %w", err)
	}
	if err := runMigrations(db, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

func runMigrations(db *sql.DB, logger zerolog.Logger) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(gooseLogger{logger})

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run goose migrations: %w", err)
	}
	return nil
}

func optimizeSQLite(db *sql.DB, logger zerolog.Logger) error {
	pragmas := []struct {
		name  string
		value string
	}{
		{"journal_mode", "WAL"},
		{"synchronous", "NORMAL"},
		{"busy_timeout", "5000"},
		{"foreign_keys", "ON"},
	}

	for _, pragma := range pragmas {
		query := fmt.Sprintf("PRAGMA %s = %s", pragma.name, pragma.value)
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to set PRAGMA %s: %w", pragma.name, err)
		}
		logger.Debug().
			Str("pragma", pragma.name).
			Str("value", pragma.value).
			Msg("SQLite pragma set")
	}
	return nil
}

func (s *SQLiteStore) Save(ctx context.Context, t *core.Tournament) error {
	if t.ID == "" {
		return ErrNoID
	}

	document, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode tournament: %w", err)
	}

	meta := t.Metadata()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tournaments (id, name, date, venue, player_count, cloud_linked, last_updated, document)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			date = excluded.date,
			venue = excluded.venue,
			player_count = excluded.player_count,
			cloud_linked = excluded.cloud_linked,
			last_updated = excluded.last_updated,
			document = excluded.document`,
		meta.ID,
		meta.Name,
		meta.Date,
		meta.Venue,
		meta.PlayerCount,
		meta.CloudLinked,
		meta.LastUpdated.UTC().Format(timeLayout),
		string(document),
	)
	if err != nil {
		return fmt.Errorf("failed to save tournament %v: %w", t.ID, err)
	}

	s.logger.Debug().Str("tournament", t.ID).Msg("tournament saved")
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, id string) (*core.Tournament, error) {
	var document string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM tournaments WHERE id = ?`, id).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament %v: %w", id, err)
	}
	return decodeTournament([]byte(document))
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tournament %v: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]core.TournamentMetadata, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, date, venue, player_count, cloud_linked, last_updated
		FROM tournaments
		ORDER BY last_updated DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	list := make([]core.TournamentMetadata, 0)
	for rows.Next() {
		var meta core.TournamentMetadata
		var lastUpdated string
		err := rows.Scan(
			&meta.ID,
			&meta.Name,
			&meta.Date,
			&meta.Venue,
			&meta.PlayerCount,
			&meta.CloudLinked,
			&lastUpdated,
		)
		if err != nil {
			return nil, err
		}

		meta.LastUpdated, err = time.Parse(timeLayout, lastUpdated)
		if err != nil {
			s.logger.Warn().Err(err).Str("tournament", meta.ID).Msg("invalid update time")
		}
		list = append(list, meta)
	}
	return list, rows.Err()
}

func (s *SQLiteStore) Close(ctx context.Context) error {
	return s.db.Close()
}

// Routes the goose output into the store logger
type gooseLogger struct {
	logger zerolog.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.logger.Debug().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Fatal().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
