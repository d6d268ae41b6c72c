package services

import (
	"context"
	"errors"
	"testing"

	"devevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	to, subject, html, text string
	err                     error
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, html, text string) error {
	m.to, m.subject, m.html, m.text = to, subject, html, text
	return m.err
}

type fakeRenderer struct {
	lastTemplate string
	err          error
}

func (r *fakeRenderer) Render(templateName string, data any) (string, string, string, error) {
	r.lastTemplate = templateName
	if r.err != nil {
		return "", "", "", r.err
	}
	d := data.(*domain.SpeakerAddedEmailData)
	return "New speaker: " + d.SpeakerName, "<p>" + d.TalkTitle + "</p>", d.TalkTitle, nil
}

func TestNotificationService_SendSpeakerAdded(t *testing.T) {
	ctx := context.Background()
	data := &domain.SpeakerAddedEmailData{To: "org@devconf.test", EventID: "ev-1", SpeakerName: "Ana", TalkTitle: "Rust 101"}

	t.Run("renders and sends", func(t *testing.T) {
		mailer := &fakeMailer{}
		renderer := &fakeRenderer{}
		svc := NewNotificationService(testLogger, mailer, renderer)

		require.NoError(t, svc.SendSpeakerAdded(ctx, data))
		assert.Equal(t, "speaker_added", renderer.lastTemplate)
		assert.Equal(t, "org@devconf.test", mailer.to)
		assert.Equal(t, "New speaker: Ana", mailer.subject)
		assert.Equal(t, "<p>Rust 101</p>", mailer.html)
	})

	t.Run("nil data", func(t *testing.T) {
		svc := NewNotificationService(testLogger, &fakeMailer{}, &fakeRenderer{})
		require.Error(t, svc.SendSpeakerAdded(ctx, nil))
	})

	t.Run("render error", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc := NewNotificationService(testLogger, mailer, &fakeRenderer{err: errors.New("bad template")})
		err := svc.SendSpeakerAdded(ctx, data)
		require.Error(t, err)
		assert.Empty(t, mailer.to)
	})

	t.Run("send error", func(t *testing.T) {
		sendErr := errors.New("ses down")
		svc := NewNotificationService(testLogger, &fakeMailer{err: sendErr}, &fakeRenderer{})
		require.ErrorIs(t, svc.SendSpeakerAdded(ctx, data), sendErr)
	})
}
