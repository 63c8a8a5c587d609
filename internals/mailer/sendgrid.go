package mailer

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/mail"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"colegio_backend/internals/configs"
)

var (
	sgHost     = "https://api.sendgrid.com"
	sgEndpoint = "/v3/mail/send"
)

type sendgridService struct {
	key  string
	from *sgmail.Email
}

var _ EmailService = (*sendgridService)(nil)

func NewSendgridService(cfg configs.MailConfig) EmailService {
	return &sendgridService{
		key:  cfg.SendgridAPIKey,
		from: sgmail.NewEmail(cfg.FromName, cfg.FromAddress),
	}
}

func (svc *sendgridService) Send(msg *EmailMessage) error {
	if !msg.HasRecipients() || (!msg.HasContent() && !msg.HasAttachments()) {
		return nil
	}

	req := sendgrid.GetRequest(svc.key, sgEndpoint, sgHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(svc.prepare(msg))

	res, err := sendgrid.API(req)
	if err != nil {
		return fmt.Errorf("enviando correo: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("enviando correo: status %d - %s", res.StatusCode, res.Body)
	}
	return nil
}

func (svc *sendgridService) prepare(msg *EmailMessage) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	for _, to := range msg.To {
		p.AddTos(svc.sgEmail(to))
	}

	m := sgmail.NewV3Mail()
	m.SetFrom(svc.from)
	m.AddPersonalizations(p)

	if msg.TextContent != "" {
		m.AddContent(sgmail.NewContent("text/plain", msg.TextContent))
	}
	if msg.HTMLContent != "" {
		m.AddContent(sgmail.NewContent("text/html", msg.HTMLContent))
	}

	for _, at := range msg.Attachments {
		m.AddAttachment(&sgmail.Attachment{
			Content:     base64.StdEncoding.EncodeToString(at.Content),
			Type:        at.ContentType,
			Filename:    at.Filename,
			Disposition: "attachment",
		})
	}
	return m
}

func (svc *sendgridService) sgEmail(addr mail.Address) *sgmail.Email {
	return sgmail.NewEmail(addr.Name, addr.Address)
}
