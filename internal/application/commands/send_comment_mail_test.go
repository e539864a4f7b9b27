package commands_test

import (
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"net/textproto"
	"testing"
	texttemplate "text/template"

	"github.com/Builder-Lawyers/tutorials-backend/internal/application/commands"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/errs"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/events"
	"github.com/Builder-Lawyers/tutorials-backend/internal/testinfra"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to      []string
	subject string
	text    string
	html    string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) SendMail(to []string, subject, textBody, htmlBody string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, text: textBody, html: htmlBody})
	return nil
}

var (
	htmlTmpl = htmltemplate.Must(htmltemplate.New("html").Parse(`<p>{{.UserName}} on <a href="{{.TutorialURL}}">{{.TutorialName}}</a>: {{.Comment}}</p>`))
	textTmpl = texttemplate.Must(texttemplate.New("text").Parse(`{{.UserName}} on {{.TutorialName}} ({{.TutorialURL}}): {{.Comment}}`))
)

var commentEvent = events.CommentPublished{
	TutorialName: "Channels",
	TutorialSlug: "channels",
	Lang:         "en",
	UserName:     "alice",
	Comment:      "<b>great</b>",
}

func Test_Send_Comment_Mail_When_Handled_Then_Sent_To_Site_Mailbox_And_Archived(t *testing.T) {
	ctx := context.Background()
	testinfra.Truncate(ctx)
	mailer := &fakeMailer{}
	SUT := commands.NewSendCommentMail(mailer, uowFactory, commands.CommentMailConfig{
		SiteTitle: "Tutorials", BaseURL: "https://example.com", Sender: "site@example.com",
	}, htmlTmpl, textTmpl)

	uow, err := SUT.Handle(ctx, commentEvent)
	require.NoError(t, err)
	require.NoError(t, uow.Commit())

	require.Len(t, mailer.sent, 1)
	sent := mailer.sent[0]
	require.Equal(t, []string{"site@example.com"}, sent.to)
	require.Equal(t, "Tutorials - New comment published", sent.subject)
	require.Equal(t, "alice on Channels (https://example.com/en/tutorial/channels): <b>great</b>", sent.text)
	require.Contains(t, sent.html, `href="https://example.com/en/tutorial/channels"`)
	require.Contains(t, sent.html, "&lt;b&gt;great&lt;/b&gt;")

	var recipients, subject string
	err = testinfra.Pool.QueryRow(ctx, "SELECT recipients, subject FROM site.mails").Scan(&recipients, &subject)
	require.NoError(t, err)
	require.Equal(t, "site@example.com", recipients)
	require.Equal(t, sent.subject, subject)
}

func Test_Send_Comment_Mail_When_Smtp_Fails_Then_Error_With_Open_Uow(t *testing.T) {
	ctx := context.Background()
	testinfra.Truncate(ctx)
	SUT := commands.NewSendCommentMail(&fakeMailer{err: errors.New("refused")}, uowFactory, commands.CommentMailConfig{
		SiteTitle: "Tutorials", Sender: "site@example.com",
	}, htmlTmpl, textTmpl)

	uow, err := SUT.Handle(ctx, commentEvent)
	require.Error(t, err)
	require.NotNil(t, uow)
	require.NoError(t, uow.Rollback())
}

func Test_Send_Comment_Mail_When_No_Sender_Then_Error(t *testing.T) {
	SUT := commands.NewSendCommentMail(&fakeMailer{}, uowFactory, commands.CommentMailConfig{}, htmlTmpl, textTmpl)

	uow, err := SUT.Handle(context.Background(), commentEvent)
	require.Error(t, err)
	require.Nil(t, uow)
}

func Test_Send_Comment_Mail_When_Smtp_Busy_Then_Retryable(t *testing.T) {
	ctx := context.Background()
	testinfra.Truncate(ctx)
	busy := fmt.Errorf("failed to send mail: %w", &textproto.Error{Code: 421, Msg: "try again later"})
	SUT := commands.NewSendCommentMail(&fakeMailer{err: busy}, uowFactory, commands.CommentMailConfig{
		SiteTitle: "Tutorials", Sender: "site@example.com",
	}, htmlTmpl, textTmpl)

	uow, err := SUT.Handle(ctx, commentEvent)
	var retryable errs.RetryableError
	require.ErrorAs(t, err, &retryable)
	require.NoError(t, uow.Rollback())
}

func Test_Render_When_Event_Has_No_Lang_Then_Default_Lang_In_Link(t *testing.T) {
	SUT := commands.NewSendCommentMail(&fakeMailer{}, uowFactory, commands.CommentMailConfig{
		SiteTitle: "Tutorials", BaseURL: "https://example.com", Sender: "site@example.com", DefaultLang: "es",
	}, htmlTmpl, textTmpl)
	event := commentEvent
	event.Lang = ""

	_, text, _, err := SUT.Render(event)
	require.NoError(t, err)
	require.Contains(t, text, "https://example.com/es/tutorial/channels")
}
