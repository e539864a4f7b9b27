package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"net/textproto"
	"net/url"
	texttemplate "text/template"

	"github.com/Builder-Lawyers/tutorials-backend/internal/application/consts"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/errs"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/events"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/interfaces"
	"github.com/Builder-Lawyers/tutorials-backend/internal/infra/db/repo"
	"github.com/Builder-Lawyers/tutorials-backend/internal/infra/mail"
	dbs "github.com/Builder-Lawyers/tutorials-backend/pkg/db"
	shared "github.com/Builder-Lawyers/tutorials-backend/pkg/interfaces"
)

type CommentMailConfig struct {
	SiteTitle   string
	BaseURL     string
	Sender      string
	// DefaultLang builds the tutorial link for events stored without a language.
	DefaultLang string
}

type SendCommentMail struct {
	server     interfaces.Mailer
	uowFactory *dbs.UOWFactory
	cfg        CommentMailConfig
	html       *htmltemplate.Template
	text       *texttemplate.Template
}

func NewSendCommentMail(server interfaces.Mailer, uowFactory *dbs.UOWFactory, cfg CommentMailConfig,
	html *htmltemplate.Template, text *texttemplate.Template) *SendCommentMail {
	return &SendCommentMail{server: server, uowFactory: uowFactory, cfg: cfg, html: html, text: text}
}

// Handle notifies the site mailbox about a new comment. The returned UoW holds
// the archived mail so the poller can mark the event in the same transaction.
func (c *SendCommentMail) Handle(ctx context.Context, event events.CommentPublished) (shared.UoW, error) {
	if c.cfg.Sender == "" {
		return nil, fmt.Errorf("no mail sender configured")
	}
	subject, textBody, htmlBody, err := c.Render(event)
	if err != nil {
		return nil, err
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	recipients := []string{c.cfg.Sender}
	err = repo.NewMailRepo(tx).InsertMail(ctx, interfaces.MailRecord{
		Type:       string(mail.CommentPublished),
		Recipients: c.cfg.Sender,
		Subject:    subject,
		Content:    htmlBody,
	})
	if err != nil {
		return uow, err
	}

	if err = c.server.SendMail(recipients, subject, textBody, htmlBody); err != nil {
		var smtpErr *textproto.Error
		if errors.As(err, &smtpErr) && smtpErr.Code >= 400 && smtpErr.Code < 500 {
			return uow, errs.RetryableError{Err: err}
		}
		return uow, err
	}
	return uow, nil
}

func (c *SendCommentMail) Render(event events.CommentPublished) (subject, textBody, htmlBody string, err error) {
	lang := event.Lang
	if lang == "" {
		lang = c.cfg.DefaultLang
	}
	data := mail.CommentPublishedData{
		SiteTitle:    c.cfg.SiteTitle,
		TutorialName: event.TutorialName,
		TutorialURL:  c.cfg.BaseURL + "/" + url.PathEscape(lang) + "/tutorial/" + url.PathEscape(event.TutorialSlug),
		UserName:     event.UserName,
		Comment:      event.Comment,
	}
	subject = fmt.Sprintf("%s - %s", c.cfg.SiteTitle, consts.MsgNewComment)

	var htmlBuf, textBuf bytes.Buffer
	if err = c.html.Execute(&htmlBuf, data); err != nil {
		return "", "", "", fmt.Errorf("error rendering html, %v", err)
	}
	if err = c.text.Execute(&textBuf, data); err != nil {
		return "", "", "", fmt.Errorf("error rendering text, %v", err)
	}
	return subject, textBuf.String(), htmlBuf.String(), nil
}
