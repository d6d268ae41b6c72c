package controllers

import (
	"time"

	"devevents/internal/domain"
)

// EventInput is the request body for POST and PUT /api/dev-events. All four fields are always replaced.
type EventInput struct {
	Title       *string   `json:"title"`
	Description string    `json:"description" validate:"max=200"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
}

func (in EventInput) toFields() domain.EventFields {
	return domain.EventFields{
		Title:       in.Title,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}
}

// SpeakerInput is the request body for POST /api/dev-events/{id}/speakers.
// EventID is accepted for compatibility and ignored; the event comes from the path.
type SpeakerInput struct {
	Name            string `json:"name"`
	TalkTitle       string `json:"talkTitle"`
	TalkDescription string `json:"talkDescription"`
	LinkedInProfile string `json:"linkedInProfile"`
	EventID         string `json:"eventId,omitempty"`
}

func (in SpeakerInput) toFields() domain.SpeakerFields {
	return domain.SpeakerFields{
		Name:            in.Name,
		TalkTitle:       in.TalkTitle,
		TalkDescription: in.TalkDescription,
		LinkedInProfile: in.LinkedInProfile,
	}
}

// SpeakerView is the wire shape of a speaker.
type SpeakerView struct {
	ID              string `json:"id"`
	EventID         string `json:"eventId"`
	Name            string `json:"name"`
	TalkTitle       string `json:"talkTitle"`
	TalkDescription string `json:"talkDescription"`
	LinkedInProfile string `json:"linkedInProfile"`
}

// EventView is the wire shape of an event. Speakers is empty, never null.
type EventView struct {
	ID          string        `json:"id"`
	Title       *string       `json:"title"`
	Description string        `json:"description"`
	StartDate   time.Time     `json:"startDate"`
	EndDate     time.Time     `json:"endDate"`
	IsDeleted   bool          `json:"isDeleted"`
	Speakers    []SpeakerView `json:"speakers"`
}

func toSpeakerView(s *domain.Speaker) SpeakerView {
	return SpeakerView{
		ID:              s.ID,
		EventID:         s.EventID,
		Name:            s.Name,
		TalkTitle:       s.TalkTitle,
		TalkDescription: s.TalkDescription,
		LinkedInProfile: s.LinkedInProfile,
	}
}

func toSpeakerViews(speakers []*domain.Speaker) []SpeakerView {
	views := make([]SpeakerView, 0, len(speakers))
	for _, s := range speakers {
		views = append(views, toSpeakerView(s))
	}
	return views
}

func toEventView(e *domain.Event) EventView {
	return EventView{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		IsDeleted:   e.IsDeleted,
		Speakers:    toSpeakerViews(e.Speakers),
	}
}

func toEventViews(events []*domain.Event) []EventView {
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		views = append(views, toEventView(e))
	}
	return views
}
