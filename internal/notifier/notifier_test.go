package notifier

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"donkinwatch/internal/model"

	"github.com/go-playground/assert/v2"
)

type recordingTransport struct {
	sent []Message
	err  error
}

func (r *recordingTransport) Send(ctx context.Context, msg Message) error {
	r.sent = append(r.sent, msg)
	return r.err
}

func sampleResults() []model.SearchResult {
	return []model.SearchResult{
		{SearchTerm: "Donkin mine buyer", Summary: "A consortium <confirmed> interest.\nTalks continue.", HasNewInfo: true},
		{SearchTerm: "Kameron Collieries sale", Summary: "Sale process reopened.", HasNewInfo: true},
	}
}

func TestNotifySendsSingleDigest(t *testing.T) {
	transport := &recordingTransport{}
	n := New(transport, "bot@example.com", "reader@example.com")
	n.now = func() time.Time { return time.Date(2025, 8, 17, 9, 0, 0, 0, time.UTC) }

	err := n.Notify(context.Background(), sampleResults())

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(transport.sent))

	msg := transport.sent[0]
	assert.Equal(t, "bot@example.com", msg.From)
	assert.Equal(t, "reader@example.com", msg.To)
	assert.Equal(t, "Donkin Mine News Alert - Sun Aug 17 2025", msg.Subject)
	assert.Equal(t, true, strings.Contains(msg.Text, "**Donkin mine buyer**\nA consortium <confirmed> interest."))
	assert.Equal(t, true, strings.Contains(msg.Text, "\n---\n"))
	assert.Equal(t, true, strings.Contains(msg.Text, "**Kameron Collieries sale**\nSale process reopened."))
	assert.Equal(t, true, strings.Contains(msg.HTML, "A consortium &lt;confirmed&gt; interest.<br>Talks continue."))
}

func TestNotifyEmptyDoesNotSend(t *testing.T) {
	transport := &recordingTransport{}
	n := New(transport, "bot@example.com", "reader@example.com")

	assert.Equal(t, nil, n.Notify(context.Background(), nil))
	assert.Equal(t, 0, len(transport.sent))
}

func TestNotifyReturnsTransportError(t *testing.T) {
	smtpDown := errors.New("dial tcp: connection refused")
	transport := &recordingTransport{err: smtpDown}
	n := New(transport, "bot@example.com", "reader@example.com")

	err := n.Notify(context.Background(), sampleResults())

	assert.Equal(t, true, errors.Is(err, smtpDown))
	assert.Equal(t, 1, len(transport.sent))
}

func TestFormatTextSeparatesResults(t *testing.T) {
	text := FormatText(sampleResults())
	assert.Equal(t, 1, strings.Count(text, "\n---\n"))
	assert.Equal(t, true, strings.HasPrefix(text, "New Donkin Mine Developments Found:\n\n**Donkin mine buyer**"))
}
