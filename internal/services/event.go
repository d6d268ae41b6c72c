package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"devevents/internal/domain"
	"devevents/internal/pkg/metrics"

	"github.com/google/uuid"
)

// Speaker sources, used as the metrics label.
const (
	speakerSourceAPI        = "api"
	speakerSourceSessionize = "sessionize"
)

type eventService struct {
	logger         *slog.Logger
	eventRepo      domain.EventRepository
	cache          domain.EventCache
	notifications  domain.NotificationService
	organizerEmail string
	speakerFetcher domain.SpeakerFetcher
	metrics        *metrics.Metrics
	contextTimeout time.Duration

	now   func() time.Time
	newID func() (uuid.UUID, error)
}

// NewEventService returns the event store. cache, notifications, speakerFetcher and m may be nil;
// notifications are only sent when organizerEmail is set.
func NewEventService(logger *slog.Logger,
	eventRepo domain.EventRepository,
	cache domain.EventCache,
	notifications domain.NotificationService,
	organizerEmail string,
	speakerFetcher domain.SpeakerFetcher,
	m *metrics.Metrics,
	timeout time.Duration,
) domain.EventService {
	if m == nil {
		m = metrics.NewNop()
	}
	return &eventService{
		logger:         logger,
		eventRepo:      eventRepo,
		cache:          cache,
		notifications:  notifications,
		organizerEmail: organizerEmail,
		speakerFetcher: speakerFetcher,
		metrics:        m,
		contextTimeout: timeout,
		now:            func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
		newID:          uuid.NewV7,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, fields domain.EventFields) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := fields.Validate(); err != nil {
		return nil, err
	}
	fields = fields.Normalized()
	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("generate event id: %w", err)
	}
	now := s.now()
	event := domain.NewEvent(fields, now, now)
	event.ID = id.String()

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.metrics.EventsCreatedTotal.Inc()
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) GetEventByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	id, ok := parseEventID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	if event := s.cachedEvent(ctx, id); event != nil {
		return event, nil
	}
	gen, fill := s.cacheGeneration(ctx, id)

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.Speakers == nil {
		event.Speakers = []*domain.Speaker{}
	}
	if fill {
		s.fillCache(ctx, event, gen)
	}
	return event, nil
}

// cacheGeneration reads id's cache generation. It must run before the storage read
// so a write that lands in between makes the fill stale.
func (s *eventService) cacheGeneration(ctx context.Context, id string) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	gen, err := s.cache.Generation(ctx, id)
	if err != nil {
		s.logger.WarnContext(ctx, "cache generation failed", "event_id", id, "err", err)
		return 0, false
	}
	return gen, true
}

func (s *eventService) fillCache(ctx context.Context, event *domain.Event, gen int64) {
	err := s.cache.Set(ctx, event, gen)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrCacheStale):
		s.logger.DebugContext(ctx, "cache fill skipped, event changed", "event_id", event.ID)
	default:
		s.logger.WarnContext(ctx, "cache set failed", "event_id", event.ID, "err", err)
	}
}

func (s *eventService) cachedEvent(ctx context.Context, id string) *domain.Event {
	if s.cache == nil {
		return nil
	}
	event, err := s.cache.Get(ctx, id)
	switch {
	case err == nil:
		s.metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
		return event
	case errors.Is(err, domain.ErrCacheMiss):
		s.metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
	default:
		s.metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
		s.logger.WarnContext(ctx, "cache get failed", "event_id", id, "err", err)
	}
	return nil
}

func (s *eventService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "cache invalidate failed", "event_id", id, "err", err)
	}
}

func (s *eventService) UpdateEvent(ctx context.Context, id string, fields domain.EventFields) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	id, ok := parseEventID(id)
	if !ok {
		return domain.ErrNotFound
	}
	if err := fields.Validate(); err != nil {
		return err
	}
	if err := s.eventRepo.Update(ctx, id, fields.Normalized(), s.now()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update event: %w", err)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	id, ok := parseEventID(id)
	if !ok {
		return domain.ErrNotFound
	}
	if err := s.eventRepo.SoftDelete(ctx, id, s.now()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	s.invalidate(ctx, id)
	s.metrics.EventsDeletedTotal.Inc()
	return nil
}

func (s *eventService) AddSpeaker(ctx context.Context, eventID string, fields domain.SpeakerFields) (*domain.Speaker, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	eventID, ok := parseEventID(eventID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	speakers, err := s.addSpeakers(ctx, eventID, []domain.SpeakerFields{fields}, speakerSourceAPI)
	if err != nil {
		return nil, err
	}
	speaker := speakers[0]
	s.notifySpeakerAdded(ctx, speaker)
	return speaker, nil
}

// addSpeakers allocates ids and stores all speakers for eventID in one transaction.
// The event id always comes from the caller, never from the speaker fields.
func (s *eventService) addSpeakers(ctx context.Context, eventID string, fields []domain.SpeakerFields, source string) ([]*domain.Speaker, error) {
	now := s.now()
	speakers := make([]*domain.Speaker, 0, len(fields))
	for _, f := range fields {
		id, err := s.newID()
		if err != nil {
			return nil, fmt.Errorf("generate speaker id: %w", err)
		}
		sp := domain.NewSpeaker(eventID, f, now)
		sp.ID = id.String()
		speakers = append(speakers, sp)
	}

	if err := s.eventRepo.AddSpeakers(ctx, eventID, speakers); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("add speakers: %w", err)
	}
	s.invalidate(ctx, eventID)
	s.metrics.SpeakersAddedTotal.WithLabelValues(source).Add(float64(len(speakers)))
	return speakers, nil
}

func (s *eventService) notifySpeakerAdded(ctx context.Context, sp *domain.Speaker) {
	if s.notifications == nil || s.organizerEmail == "" {
		return
	}
	data := &domain.SpeakerAddedEmailData{
		To:          s.organizerEmail,
		EventID:     sp.EventID,
		SpeakerName: sp.Name,
		TalkTitle:   sp.TalkTitle,
	}
	if err := s.notifications.SendSpeakerAdded(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "speaker notification failed", "event_id", sp.EventID, "speaker_id", sp.ID, "err", err)
	}
}

func (s *eventService) ImportSessionizeSpeakers(ctx context.Context, eventID, sessionizeID string) ([]*domain.Speaker, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	eventID, ok := parseEventID(eventID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	if s.speakerFetcher == nil {
		return nil, fmt.Errorf("%w: sessionize import is not configured", domain.ErrUpstream)
	}
	data, err := s.speakerFetcher.Fetch(ctx, sessionizeID)
	if err != nil {
		return nil, err
	}
	return s.addSpeakers(ctx, eventID, speakerFieldsFromSessionize(data), speakerSourceSessionize)
}

// speakerFieldsFromSessionize maps each Sessionize speaker to SpeakerFields, taking the talk from
// the first session that lists the speaker.
func speakerFieldsFromSessionize(data domain.SessionizeAllResponse) []domain.SpeakerFields {
	talks := make(map[string]domain.SessionizeSession)
	for _, session := range data.Sessions {
		for _, speakerID := range session.Speakers {
			if _, ok := talks[speakerID]; !ok {
				talks[speakerID] = session
			}
		}
	}

	out := make([]domain.SpeakerFields, 0, len(data.Speakers))
	for _, sp := range data.Speakers {
		f := domain.SpeakerFields{
			Name:            sp.DisplayName(),
			LinkedInProfile: sp.LinkedInProfile(),
		}
		if talk, ok := talks[sp.ID]; ok {
			f.TalkTitle = talk.Title
			if talk.Description != nil {
				f.TalkDescription = *talk.Description
			}
		}
		out = append(out, f)
	}
	return out
}

// parseEventID returns id in canonical lowercase hyphenated form. Storage and
// cache keys only ever see this form, whatever spelling uuid.Parse accepted.
func parseEventID(id string) (string, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}
