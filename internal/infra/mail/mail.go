package mail

import (
	"bytes"
	"fmt"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"sort"
	"strings"

	"github.com/Builder-Lawyers/tutorials-backend/internal/application/interfaces"
)

type MailServer struct {
	cfg  *MailConfig
	auth smtp.Auth
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

var _ interfaces.Mailer = (*MailServer)(nil)

func NewMailServer(cfg *MailConfig) *MailServer {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.SMTPHost)
	}
	return &MailServer{
		cfg:  cfg,
		auth: auth,
		send: smtp.SendMail,
	}
}

func (m *MailServer) SendMail(to []string, subject, textBody, htmlBody string) error {
	if m.cfg.Sender == "" {
		return fmt.Errorf("failed to send mail: no sender configured")
	}
	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort

	msg, err := BuildMessage(m.cfg.Sender, to, subject, textBody, htmlBody)
	if err != nil {
		return err
	}
	err = m.send(addr, m.auth, m.cfg.Sender, to, msg)
	if err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

// BuildMessage renders a multipart/alternative message with a text and an html part.
func BuildMessage(from string, to []string, subject, textBody, htmlBody string) ([]byte, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	parts := []struct {
		contentType string
		content     string
	}{
		{"text/plain; charset=\"utf-8\"", textBody},
		{"text/html; charset=\"utf-8\"", htmlBody},
	}
	for _, part := range parts {
		pw, err := w.CreatePart(textproto.MIMEHeader{"Content-Type": {part.contentType}})
		if err != nil {
			return nil, fmt.Errorf("err creating mail part, %v", err)
		}
		if _, err = pw.Write([]byte(part.content)); err != nil {
			return nil, fmt.Errorf("err writing mail part, %v", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("err closing mail body, %v", err)
	}

	headers := make(map[string]string)
	headers["From"] = from
	headers["To"] = strings.Join(to, ",")
	headers["Subject"] = mime.QEncoding.Encode("utf-8", subject)
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "multipart/alternative; boundary=" + w.Boundary()

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var msg strings.Builder
	for _, k := range keys {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", k, headers[k]))
	}
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())
	return []byte(msg.String()), nil
}
