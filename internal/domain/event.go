package domain

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"
)

// MaxDescriptionLength is the storage bound of events.description (varchar(200)), in characters.
const MaxDescriptionLength = 200

// Event represents a developer conference event. It owns its speakers.
// swagger:model Event
type Event struct {
	ID          string     `json:"id"`
	Title       *string    `json:"title"`
	Description string     `json:"description"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     time.Time  `json:"endDate"`
	IsDeleted   bool       `json:"isDeleted"`
	Speakers    []*Speaker `json:"speakers"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// EventFields holds the mutable fields of an event. Create and Update always take all of them.
type EventFields struct {
	Title       *string
	Description string
	StartDate   time.Time
	EndDate     time.Time
}

// Validate checks the description bound. Start after end is accepted.
func (f EventFields) Validate() error {
	if n := utf8.RuneCountInString(f.Description); n > MaxDescriptionLength {
		return fmt.Errorf("%w: description must be at most %d characters, got %d", ErrValidation, MaxDescriptionLength, n)
	}
	return nil
}

// Normalized returns f with both dates in UTC at microsecond precision, the
// resolution of a timestamptz column, so stored and returned values are equal.
func (f EventFields) Normalized() EventFields {
	f.StartDate = f.StartDate.UTC().Truncate(time.Microsecond)
	f.EndDate = f.EndDate.UTC().Truncate(time.Microsecond)
	return f
}

// NewEvent returns a new, not deleted Event with the given fields and no speakers.
// ID is set by the service on create.
func NewEvent(fields EventFields, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:       fields.Title,
		Description: fields.Description,
		StartDate:   fields.StartDate,
		EndDate:     fields.EndDate,
		IsDeleted:   false,
		Speakers:    []*Speaker{},
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// Fields returns the mutable fields of e.
func (e *Event) Fields() EventFields {
	return EventFields{
		Title:       e.Title,
		Description: e.Description,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
	}
}

// EventRepository defines the interface for event storage.
// Every method is a single durable transaction.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	// List returns events that are not soft-deleted, in creation order, without speakers.
	List(ctx context.Context) ([]*Event, error)
	// GetByID returns the event with its speakers, deleted or not.
	GetByID(ctx context.Context, id string) (*Event, error)
	Update(ctx context.Context, id string, fields EventFields, updatedAt time.Time) error
	SoftDelete(ctx context.Context, id string, updatedAt time.Time) error
	// AddSpeakers inserts all speakers for eventID, or none of them.
	AddSpeakers(ctx context.Context, eventID string, speakers []*Speaker) error
}

// EventCache is a read-through cache of events fetched by id.
// Every Invalidate bumps a per-id generation. A reader takes the generation before
// loading from storage and passes it to Set, which refuses to store a snapshot
// older than the last invalidation.
type EventCache interface {
	Get(ctx context.Context, id string) (*Event, error)
	Generation(ctx context.Context, id string) (int64, error)
	// Set returns ErrCacheStale when id was invalidated after gen was read.
	Set(ctx context.Context, event *Event, gen int64) error
	Invalidate(ctx context.Context, id string) error
}

// EventService is the event store: the only way the delivery layer reads or writes events.
type EventService interface {
	CreateEvent(ctx context.Context, fields EventFields) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	GetEventByID(ctx context.Context, id string) (*Event, error)
	UpdateEvent(ctx context.Context, id string, fields EventFields) error
	DeleteEvent(ctx context.Context, id string) error
	AddSpeaker(ctx context.Context, eventID string, fields SpeakerFields) (*Speaker, error)
	ImportSessionizeSpeakers(ctx context.Context, eventID, sessionizeID string) ([]*Speaker, error)
}
