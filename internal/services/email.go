package services

import (
	"context"
	"fmt"
	"log/slog"

	"devevents/internal/domain"
)

type notificationService struct {
	logger   *slog.Logger
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewNotificationService returns a NotificationService that uses the given Mailer and template renderer.
func NewNotificationService(logger *slog.Logger, mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.NotificationService {
	return &notificationService{logger: logger, mailer: mailer, renderer: renderer}
}

// SendSpeakerAdded sends the "speaker_added" email to the organizer address in data.
func (s *notificationService) SendSpeakerAdded(ctx context.Context, data *domain.SpeakerAddedEmailData) error {
	if data == nil {
		return fmt.Errorf("speaker added data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("speaker_added", data)
	if err != nil {
		return fmt.Errorf("failed to render speaker_added template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.To, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send speaker added email: %w", err)
	}
	s.logger.InfoContext(ctx, "speaker added email sent", "to", data.To, "event_id", data.EventID)
	return nil
}
