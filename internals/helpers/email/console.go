package email

import (
	"fmt"
	"log"
	"net/mail"
	"strings"
	"sync"
	"time"
)

type consoleService struct {
	from       mail.Address
	subjPrefix string
}

var _ EmailService = (*consoleService)(nil)

// NewConsoleService writes messages to the standard log instead of sending them.
func NewConsoleService(appName, fromEmail string) EmailService {
	return &consoleService{
		from:       mail.Address{Name: appName, Address: fromEmail},
		subjPrefix: "[" + appName + "] ",
	}
}

func (svc *consoleService) SendMessages(messages ...*EmailMessage) {
	for _, msg := range messages {
		if msg == nil || !msg.HasRecipients() || !msg.HasContent() {
			continue
		}
		log.Println(svc.render(*msg))
	}
}

func (svc *consoleService) render(msg EmailMessage) string {
	b := new(strings.Builder)
	_, _ = fmt.Fprintf(b, "[EMAIL] From: %s\r\n", svc.from.String())
	_, _ = fmt.Fprintf(b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	_, _ = fmt.Fprintf(b, "Subject: %s\r\n", svc.subjPrefix+msg.Subject)
	_, _ = fmt.Fprintf(b, "To: %s\r\n\r\n", joinAddresses(msg.To))
	_, _ = fmt.Fprintf(b, "%s\r\n", msg.TextContent)
	return b.String()
}

func joinAddresses(addrs []mail.Address) string {
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, a.String())
	}
	return strings.Join(out, ", ")
}

// Recorder keeps messages in memory; used by tests.
type Recorder struct {
	mu   sync.Mutex
	Sent []EmailMessage
}

var _ EmailService = (*Recorder)(nil)

func (r *Recorder) SendMessages(messages ...*EmailMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range messages {
		if m != nil && m.HasRecipients() && m.HasContent() {
			r.Sent = append(r.Sent, *m)
		}
	}
}

func (r *Recorder) Messages() []EmailMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]EmailMessage(nil), r.Sent...)
}
