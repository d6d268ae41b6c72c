package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// SpeakerAddedEmailData holds data for the organizer notification sent when a speaker registers.
type SpeakerAddedEmailData struct {
	To          string
	EventID     string
	SpeakerName string
	TalkTitle   string
}

// NotificationService defines the contract for sending domain-level notifications.
type NotificationService interface {
	SendSpeakerAdded(ctx context.Context, data *SpeakerAddedEmailData) error
}
