package core

import "net/mail"

type (
	// EmailMessage is a plain-text email. No templating or attachments:
	// the only mail this system sends is short operational alerts.
	EmailMessage struct {
		To       []mail.Address
		Subject  string
		BodyText string
	}

	// EmailService sends messages asynchronously; failures are logged, not returned.
	EmailService interface {
		SendMessages(messages ...*EmailMessage)
	}
)

func (m EmailMessage) HasRecipients() bool {
	return len(m.To) > 0
}

func (m EmailMessage) HasContent() bool {
	return m.BodyText != ""
}
