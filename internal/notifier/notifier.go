package notifier

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"donkinwatch/internal/model"
)

type Message struct {
	From    string
	To      string
	Subject string
	Text    string
	HTML    string
}

type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// Notifier sends one digest for a batch of search results.
type Notifier struct {
	transport Transport
	from      string
	to        string
	now       func() time.Time
}

func New(transport Transport, from, to string) *Notifier {
	return &Notifier{
		transport: transport,
		from:      from,
		to:        to,
		now:       time.Now,
	}
}

// Notify sends results as a single message. Nothing is sent for an empty
// batch. Send failures are returned as is; there is no retry.
func (n *Notifier) Notify(ctx context.Context, results []model.SearchResult) error {
	if len(results) == 0 {
		return nil
	}

	msg := Message{
		From:    n.from,
		To:      n.to,
		Subject: fmt.Sprintf("Donkin Mine News Alert - %s", n.now().Format("Mon Jan 02 2006")),
		Text:    FormatText(results),
		HTML:    FormatHTML(results),
	}

	if err := n.transport.Send(ctx, msg); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}
	return nil
}

func FormatText(results []model.SearchResult) string {
	blocks := make([]string, len(results))
	for i, r := range results {
		blocks[i] = fmt.Sprintf("**%s**\n%s\n", r.SearchTerm, r.Summary)
	}

	var sb strings.Builder
	sb.WriteString("New Donkin Mine Developments Found:\n\n")
	sb.WriteString(strings.Join(blocks, "\n---\n\n"))
	sb.WriteString("\nCheck your app for full details and sources.\n\nSent automatically by Donkin Mine Tracker")
	return sb.String()
}

func FormatHTML(results []model.SearchResult) string {
	var sb strings.Builder
	sb.WriteString("<h2>New Donkin Mine Developments Found:</h2>\n")
	for _, r := range results {
		summary := strings.ReplaceAll(html.EscapeString(r.Summary), "\n", "<br>")
		fmt.Fprintf(&sb, `<div style="margin: 20px 0; padding: 15px; border-left: 4px solid #1FB8CD;">`+"\n<h3>%s</h3>\n<p>%s</p>\n</div>\n",
			html.EscapeString(r.SearchTerm), summary)
	}
	sb.WriteString("<p><em>Check your app for full details and sources.</em></p>\n")
	sb.WriteString("<p><small>Sent automatically by Donkin Mine Tracker</small></p>\n")
	return sb.String()
}
