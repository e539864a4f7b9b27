package mail

import (
	"github.com/Builder-Lawyers/tutorials-backend/pkg/env"
)

type MailConfig struct {
	SMTPHost string
	SMTPPort string
	Username string
	Password string
	Sender   string
}

func NewMailConfig() *MailConfig {
	return &MailConfig{
		SMTPHost: env.GetEnv("MAIL_HOST", "localhost"),
		SMTPPort: env.GetEnv("MAIL_PORT", "25"),
		Username: env.GetEnv("MAIL_USERNAME", ""),
		Password: env.GetEnv("MAIL_PASSWORD", ""),
		Sender:   env.GetEnv("DEFAULT_MAIL_SENDER", ""),
	}
}
