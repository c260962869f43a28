package email

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPicksConsoleWithoutKey(t *testing.T) {
	_, ok := New("", "Ecclesia", "no-reply@ecclesia.app").(*consoleService)
	assert.True(t, ok)

	_, ok = New("SG.key", "Ecclesia", "no-reply@ecclesia.app").(*sendgridService)
	assert.True(t, ok)
}

func TestConsoleRender(t *testing.T) {
	svc := NewConsoleService("Ecclesia", "no-reply@ecclesia.app").(*consoleService)
	out := svc.render(*NewMessage("Ana", "ana@example.com", "Welcome", "Hello Ana"))

	assert.Contains(t, out, "Subject: [Ecclesia] Welcome")
	assert.Contains(t, out, "ana@example.com")
	assert.True(t, strings.Contains(out, "Hello Ana"))
}

func TestSendgridPrepare(t *testing.T) {
	svc := NewSendgridService("SG.key", "Ecclesia", "no-reply@ecclesia.app").(*sendgridService)
	m := svc.prepare(EmailMessage{
		To:          NewMessage("Ana", "ana@example.com", "", "").To,
		Subject:     "Plan approved",
		HTMLContent: "<p>ok</p>",
	})

	require.Len(t, m.Personalizations, 1)
	assert.Equal(t, "[Ecclesia] Plan approved", m.Personalizations[0].Subject)
	require.Len(t, m.Personalizations[0].To, 1)
	assert.Equal(t, "ana@example.com", m.Personalizations[0].To[0].Address)
	assert.Len(t, m.Content, 2)
}

func TestRecorderSkipsEmptyMessages(t *testing.T) {
	r := &Recorder{}
	r.SendMessages(
		NewMessage("Ana", "ana@example.com", "Hi", "body"),
		&EmailMessage{Subject: "no recipients", TextContent: "x"},
		NewMessage("Bia", "bia@example.com", "Hi", "  "),
		nil,
	)
	require.Len(t, r.Messages(), 1)
	assert.Equal(t, "Hi", r.Messages()[0].Subject)
}
