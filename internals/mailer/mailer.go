package mailer

import (
	"net/mail"
)

type Attachment struct {
	Content     []byte
	ContentType string
	Filename    string
}

type EmailMessage struct {
	To          []mail.Address
	Subject     string
	TextContent string
	HTMLContent string
	Attachments []Attachment
}

func (m *EmailMessage) HasRecipients() bool  { return len(m.To) > 0 }
func (m *EmailMessage) HasContent() bool     { return m.TextContent != "" || m.HTMLContent != "" }
func (m *EmailMessage) HasAttachments() bool { return len(m.Attachments) > 0 }

// EmailService es cualquier backend capaz de enviar correo.
// Los envíos son síncronos: los llamadores deciden si el fallo aborta
// la operación (reportes de notas) o solo se registra (avisos).
type EmailService interface {
	Send(msg *EmailMessage) error
}
