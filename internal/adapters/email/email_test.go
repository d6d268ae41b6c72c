package email

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"devevents/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestTemplateRenderer_SpeakerAdded(t *testing.T) {
	r := NewTemplateRenderer()
	data := &domain.SpeakerAddedEmailData{
		To:          "org@devconf.test",
		EventID:     "ev-1",
		SpeakerName: "Ana <script>",
		TalkTitle:   "Rust 101",
	}

	subject, html, text, err := r.Render("speaker_added", data)
	require.NoError(t, err)
	assert.Equal(t, "New speaker registered: Ana <script>", subject)
	assert.Contains(t, html, "Ana &lt;script&gt;")
	assert.Contains(t, html, "Rust 101")
	assert.Contains(t, text, "Ana <script> has registered as a speaker for event ev-1.")
}

func TestTemplateRenderer_MissingTalkTitle(t *testing.T) {
	_, html, text, err := NewTemplateRenderer().Render("speaker_added", &domain.SpeakerAddedEmailData{SpeakerName: "Ana", EventID: "ev-1"})
	require.NoError(t, err)
	assert.Contains(t, html, "<em>no title yet</em>")
	assert.Contains(t, text, "Talk: (no title yet)")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	_, _, _, err := NewTemplateRenderer().Render("missing", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `email "missing" subject`)
}

func TestEmbeddedTemplates_Complete(t *testing.T) {
	for _, tmpl := range htmlTemplates.Templates() {
		name := strings.TrimSuffix(tmpl.Name(), ".html")
		assert.NotNil(t, textTemplates.Lookup(name+".txt"), name)
		assert.NotNil(t, textTemplates.Lookup(name+"_subject.txt"), name)
	}
}

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESMailer_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("builds source and bodies", func(t *testing.T) {
		client := &fakeSES{}
		m := &sesMailer{logger: testLogger, client: client, fromAddress: "noreply@devconf.test", fromName: "Dev Events"}

		require.NoError(t, m.Send(ctx, "org@devconf.test", "subj", "<p>hi</p>", ""))
		assert.Equal(t, "Dev Events <noreply@devconf.test>", aws.ToString(client.input.Source))
		assert.Equal(t, []string{"org@devconf.test"}, client.input.Destination.ToAddresses)
		assert.Equal(t, "subj", aws.ToString(client.input.Message.Subject.Data))
		require.NotNil(t, client.input.Message.Body.Html)
		assert.Nil(t, client.input.Message.Body.Text)
	})

	t.Run("error is wrapped", func(t *testing.T) {
		sendErr := errors.New("throttled")
		m := &sesMailer{logger: testLogger, client: &fakeSES{err: sendErr}, fromAddress: "noreply@devconf.test"}
		require.ErrorIs(t, m.Send(ctx, "org@devconf.test", "s", "", "t"), sendErr)
	})
}

func TestNewMailer(t *testing.T) {
	_, ok := NewMailer(testLogger, MailerConfig{Provider: "noop"}).(*noopMailer)
	assert.True(t, ok)
	_, ok = NewMailer(testLogger, MailerConfig{Provider: "carrier-pigeon"}).(*noopMailer)
	assert.True(t, ok)
	_, ok = NewMailer(testLogger, MailerConfig{Provider: "ses", SES: SESConfig{Region: "us-east-1"}}).(*sesMailer)
	assert.True(t, ok)

	require.NoError(t, NewMailer(testLogger, MailerConfig{}).Send(context.Background(), "a@b.c", "s", "h", "t"))
}
