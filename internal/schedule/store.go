// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/uninavi/uninavi/pkg/types"
)

const dbFile = "uninavi.db"

// Store manages the schedule SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens or creates the schedule database at dataDir/uninavi.db,
// creating the schema when missing.
func NewStore(cfg types.ScheduleConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			date TEXT NOT NULL,
			type TEXT NOT NULL,
			university TEXT,
			description TEXT,
			location TEXT,
			url TEXT,
			user_id TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_date ON events(date)`,
		`CREATE INDEX IF NOT EXISTS idx_events_type ON events(type)`,
		`CREATE INDEX IF NOT EXISTS idx_events_user_id ON events(user_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Create persists a new event for userID and returns it with generated
// identity and timestamps.
func (s *Store) Create(ctx context.Context, form FormData, userID string) (*Event, error) {
	if userID == "" {
		userID = DefaultUserID
	}
	if form.Title == "" {
		return nil, fmt.Errorf("event title is required")
	}
	if !ValidType(form.Type) {
		return nil, fmt.Errorf("invalid event type %q", form.Type)
	}

	now := s.now().UTC()
	ev := &Event{
		ID:          uuid.NewString(),
		Title:       form.Title,
		Date:        form.Date.UTC(),
		Type:        form.Type,
		University:  form.University,
		Description: form.Description,
		Location:    form.Location,
		URL:         form.URL,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	uniJSON, err := marshalUniversity(ev.University)
	if err != nil {
		return nil, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO events (id, title, date, type, university, description, location, url, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.Title, ev.Date.Format(time.RFC3339), ev.Type, uniJSON,
		ev.Description, ev.Location, ev.URL, ev.UserID,
		ev.CreatedAt.Format(time.RFC3339), ev.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("inserting event: %w", err)
	}
	return ev, nil
}

// Get returns one event by id. ErrNotFound when absent.
func (s *Store) Get(ctx context.Context, id string) (*Event, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, date, type, university, description, location, url, user_id, created_at, updated_at
		 FROM events WHERE id = ?`, id)
	ev, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading event: %w", err)
	}
	return ev, nil
}

// List returns events matching the filters, ordered by date ascending.
func (s *Store) List(ctx context.Context, filters Filters) ([]Event, error) {
	query := `SELECT id, title, date, type, university, description, location, url, user_id, created_at, updated_at
		 FROM events WHERE 1=1`
	var args []any
	if !filters.Start.IsZero() {
		query += " AND date >= ?"
		args = append(args, filters.Start.UTC().Format(time.RFC3339))
	}
	if !filters.End.IsZero() {
		query += " AND date <= ?"
		args = append(args, filters.End.UTC().Format(time.RFC3339))
	}
	if filters.Type != "" {
		query += " AND type = ?"
		args = append(args, filters.Type)
	}
	if filters.UserID != "" {
		query += " AND user_id = ?"
		args = append(args, filters.UserID)
	}
	query += " ORDER BY date ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		// University filtering needs the decoded reference.
		if filters.UniversityID != "" && (ev.University == nil || ev.University.ID != filters.UniversityID) {
			continue
		}
		events = append(events, *ev)
	}
	return events, rows.Err()
}

// Update overwrites the caller-supplied fields of an event owned by
// userID. ErrNotFound when the event is missing or owned by another user.
func (s *Store) Update(ctx context.Context, id string, form FormData, userID string) (*Event, error) {
	if userID == "" {
		userID = DefaultUserID
	}
	if !ValidType(form.Type) {
		return nil, fmt.Errorf("invalid event type %q", form.Type)
	}

	uniJSON, err := marshalUniversity(form.University)
	if err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE events SET title = ?, date = ?, type = ?, university = ?, description = ?, location = ?, url = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		form.Title, form.Date.UTC().Format(time.RFC3339), form.Type, uniJSON,
		form.Description, form.Location, form.URL, s.now().UTC().Format(time.RFC3339),
		id, userID)
	if err != nil {
		return nil, fmt.Errorf("updating event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("updating event: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

// Delete removes an event owned by userID. ErrNotFound when nothing
// matched.
func (s *Store) Delete(ctx context.Context, id, userID string) error {
	if userID == "" {
		userID = DefaultUserID
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats summarizes one user's events. Every event type appears in the
// by-type map even when its count is zero.
func (s *Store) Stats(ctx context.Context, userID string) (Stats, error) {
	if userID == "" {
		userID = DefaultUserID
	}
	events, err := s.List(ctx, Filters{UserID: userID})
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		TotalEvents:  len(events),
		EventsByType: make(map[string]int, len(EventTypes)),
	}
	for _, t := range EventTypes {
		stats.EventsByType[t] = 0
	}

	now := s.now().UTC()
	nextMonth := now.AddDate(0, 1, 0)
	for _, ev := range events {
		stats.EventsByType[ev.Type]++
		if !ev.Date.Before(now) {
			stats.UpcomingEvents++
			if !ev.Date.After(nextMonth) {
				stats.ThisMonthEvents++
			}
		}
	}
	return stats, nil
}

func marshalUniversity(ref *UniversityRef) (sql.NullString, error) {
	if ref == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(ref)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encoding university reference: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*Event, error) {
	var ev Event
	var date, createdAt, updatedAt string
	var university sql.NullString
	err := row.Scan(&ev.ID, &ev.Title, &date, &ev.Type, &university,
		&ev.Description, &ev.Location, &ev.URL, &ev.UserID, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if ev.Date, err = time.Parse(time.RFC3339, date); err != nil {
		return nil, fmt.Errorf("parsing event date: %w", err)
	}
	if ev.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created timestamp: %w", err)
	}
	if ev.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated timestamp: %w", err)
	}
	if university.Valid {
		var ref UniversityRef
		if err := json.Unmarshal([]byte(university.String), &ref); err != nil {
			return nil, fmt.Errorf("decoding university reference: %w", err)
		}
		ev.University = &ref
	}
	return &ev, nil
}
