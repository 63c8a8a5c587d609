package mailer

import (
	"log"
	"strings"
	"sync"
)

// consoleService imprime el correo en el log. Se usa en desarrollo y en
// tests (con output deshabilitado); guarda lo enviado para aserciones.
type consoleService struct {
	mu            sync.Mutex
	sent          []EmailMessage
	disableOutput bool
}

var _ EmailService = (*consoleService)(nil)

func NewConsoleService() *consoleService {
	return &consoleService{}
}

func NewConsoleServiceMock() *consoleService {
	return &consoleService{disableOutput: true}
}

func (svc *consoleService) Send(msg *EmailMessage) error {
	if !msg.HasRecipients() || (!msg.HasContent() && !msg.HasAttachments()) {
		return nil
	}

	svc.mu.Lock()
	svc.sent = append(svc.sent, *msg)
	svc.mu.Unlock()

	if svc.disableOutput {
		return nil
	}

	body := new(strings.Builder)
	body.WriteString("To: " + svc.joinAddresses(msg) + "\r\n")
	body.WriteString("Subject: " + msg.Subject + "\r\n\r\n")
	body.WriteString(msg.TextContent + "\r\n")
	for _, at := range msg.Attachments {
		body.WriteString("[adjunto] " + at.Filename + " (" + at.ContentType + ")\r\n")
	}
	log.Println(body.String())
	return nil
}

// SentMessages devuelve una copia de lo enviado hasta ahora.
func (svc *consoleService) SentMessages() []EmailMessage {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	out := make([]EmailMessage, len(svc.sent))
	copy(out, svc.sent)
	return out
}

func (svc *consoleService) joinAddresses(msg *EmailMessage) string {
	toJoin := make([]string, 0, len(msg.To))
	for _, a := range msg.To {
		toJoin = append(toJoin, a.String())
	}
	return strings.Join(toJoin, ", ")
}
