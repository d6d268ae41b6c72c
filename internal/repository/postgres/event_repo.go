package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"devevents/internal/domain"

	"github.com/lib/pq"
)

// Postgres error codes mapped onto domain errors.
const (
	pqForeignKeyViolation = "23503"
	pqStringTooLong       = "22001"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(s rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var titleNull sql.NullString
	if err := s.Scan(&e.ID, &titleNull, &e.Description, &e.StartDate, &e.EndDate, &e.IsDeleted, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	if titleNull.Valid {
		e.Title = &titleNull.String
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (id, title, description, start_date, end_date, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.DB.ExecContext(ctx, query, e.ID, nullString(e.Title), e.Description, e.StartDate, e.EndDate, e.IsDeleted, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT id, title, description, start_date, end_date, is_deleted, created_at, updated_at
		FROM events
		WHERE is_deleted = FALSE
		ORDER BY created_at, id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, title, description, start_date, end_date, is_deleted, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	speakers, err := r.listSpeakers(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list speakers: %w", err)
	}
	e.Speakers = speakers
	return e, nil
}

func (r *eventRepository) listSpeakers(ctx context.Context, eventID string) ([]*domain.Speaker, error) {
	query := `
		SELECT id, event_id, name, talk_title, talk_description, linked_in_profile, created_at
		FROM speakers
		WHERE event_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	speakers := make([]*domain.Speaker, 0)
	for rows.Next() {
		s := &domain.Speaker{}
		if err := rows.Scan(&s.ID, &s.EventID, &s.Name, &s.TalkTitle, &s.TalkDescription, &s.LinkedInProfile, &s.CreatedAt); err != nil {
			return nil, err
		}
		speakers = append(speakers, s)
	}
	return speakers, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id string, f domain.EventFields, updatedAt time.Time) error {
	query := `
		UPDATE events
		SET title = $1, description = $2, start_date = $3, end_date = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := r.DB.ExecContext(ctx, query, nullString(f.Title), f.Description, f.StartDate, f.EndDate, updatedAt, id)
	if err != nil {
		return mapError(err)
	}
	return requireAffected(result)
}

func (r *eventRepository) SoftDelete(ctx context.Context, id string, updatedAt time.Time) error {
	// Matches already-deleted rows too, so a repeat delete reports success.
	query := `UPDATE events SET is_deleted = TRUE, updated_at = $1 WHERE id = $2`
	result, err := r.DB.ExecContext(ctx, query, updatedAt, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (r *eventRepository) AddSpeakers(ctx context.Context, eventID string, speakers []*domain.Speaker) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var found string
	err = tx.QueryRowContext(ctx, `SELECT id FROM events WHERE id = $1 FOR SHARE`, eventID).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	query := `
		INSERT INTO speakers (id, event_id, name, talk_title, talk_description, linked_in_profile, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, s := range speakers {
		if _, err = tx.ExecContext(ctx, query, s.ID, eventID, s.Name, s.TalkTitle, s.TalkDescription, s.LinkedInProfile, s.CreatedAt); err != nil {
			return mapError(err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func requireAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// mapError translates constraint violations the store models into domain errors.
func mapError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqForeignKeyViolation:
			return domain.ErrNotFound
		case pqStringTooLong:
			return fmt.Errorf("%w: %s", domain.ErrValidation, pqErr.Message)
		}
	}
	return err
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
