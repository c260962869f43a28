package email

import (
	"net/mail"
	"strings"
)

// EmailMessage is one outbound transactional e-mail.
type EmailMessage struct {
	To          []mail.Address
	Subject     string
	TextContent string
	HTMLContent string
}

func (m EmailMessage) HasRecipients() bool { return len(m.To) > 0 }

func (m EmailMessage) HasContent() bool {
	return strings.TrimSpace(m.TextContent) != "" || strings.TrimSpace(m.HTMLContent) != ""
}

// EmailService sends messages asynchronously; delivery failures are logged.
type EmailService interface {
	SendMessages(messages ...*EmailMessage)
}

// NewMessage builds a single-recipient plain text message.
func NewMessage(toName, toEmail, subject, text string) *EmailMessage {
	return &EmailMessage{
		To:          []mail.Address{{Name: toName, Address: toEmail}},
		Subject:     subject,
		TextContent: text,
	}
}

// New picks SendGrid when an API key is configured, otherwise the console.
func New(apiKey, appName, fromEmail string) EmailService {
	if strings.TrimSpace(apiKey) == "" {
		return NewConsoleService(appName, fromEmail)
	}
	return NewSendgridService(apiKey, appName, fromEmail)
}
