package domain

import "time"

// Speaker represents a speaker registered to exactly one event.
// EventID is a plain foreign key; the event owns the speaker.
// swagger:model Speaker
type Speaker struct {
	ID              string    `json:"id"`
	EventID         string    `json:"eventId"`
	Name            string    `json:"name"`
	TalkTitle       string    `json:"talkTitle"`
	TalkDescription string    `json:"talkDescription"`
	LinkedInProfile string    `json:"linkedInProfile"`
	CreatedAt       time.Time `json:"createdAt"`
}

// SpeakerFields holds the client-supplied fields of a speaker.
type SpeakerFields struct {
	Name            string
	TalkTitle       string
	TalkDescription string
	LinkedInProfile string
}

// NewSpeaker returns a new Speaker for eventID. ID is set by the service on create.
func NewSpeaker(eventID string, fields SpeakerFields, createdAt time.Time) *Speaker {
	return &Speaker{
		EventID:         eventID,
		Name:            fields.Name,
		TalkTitle:       fields.TalkTitle,
		TalkDescription: fields.TalkDescription,
		LinkedInProfile: fields.LinkedInProfile,
		CreatedAt:       createdAt,
	}
}
