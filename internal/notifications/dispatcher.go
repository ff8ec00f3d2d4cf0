package notifications

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aquaplan/aquatutor-backend/pkg/logger"
	"github.com/aquaplan/aquatutor-backend/pkg/metrics"
	"github.com/aquaplan/aquatutor-backend/pkg/resend"
)

// Sender delivers a single email message. pkg/resend implements it.
type Sender interface {
	Send(ctx context.Context, msg resend.Message) (*resend.SendResult, error)
}

// Message is a rendered mail ready for delivery.
type Message struct {
	Template    string
	Subject     string
	HTML        string
	Text        string
	Attachments []resend.Attachment
}

// DispatcherParams groups dispatcher dependencies.
type DispatcherParams struct {
	Sender  Sender
	Metrics *metrics.MailerMetrics
	Logger  *logger.Logger
}

// Dispatcher fans a rendered message out to its recipients one at a time.
type Dispatcher struct {
	sender  Sender
	metrics *metrics.MailerMetrics
	logg    *logger.Logger
}

// NewDispatcher builds a notification dispatcher.
func NewDispatcher(params DispatcherParams) (*Dispatcher, error) {
	if params.Sender == nil {
		return nil, errors.New("sender is required")
	}
	return &Dispatcher{
		sender:  params.Sender,
		metrics: params.Metrics,
		logg:    params.Logger,
	}, nil
}

// NormalizeRecipients drops blank entries and case-insensitive duplicates
// while preserving first-seen order.
func NormalizeRecipients(recipients []string) []string {
	seen := make(map[string]struct{}, len(recipients))
	out := make([]string, 0, len(recipients))
	for _, r := range recipients {
		trimmed := strings.TrimSpace(r)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

// Dispatch sends msg to every recipient sequentially. Recipients are
// normalized first; the first delivery failure aborts the remaining sends.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message, recipients ...string) error {
	cleaned := NormalizeRecipients(recipients)
	if len(cleaned) == 0 {
		return errors.New("no recipients to notify")
	}

	for _, to := range cleaned {
		start := time.Now()
		_, err := d.sender.Send(ctx, resend.Message{
			To:          []string{to},
			Subject:     msg.Subject,
			HTML:        msg.HTML,
			Text:        msg.Text,
			Attachments: msg.Attachments,
		})
		d.metrics.ObserveDuration(msg.Template, time.Since(start))
		if err != nil {
			d.metrics.IncFailed(msg.Template)
			if d.logg != nil {
				d.logg.Error(ctx, "mail delivery failed", err)
			}
			return err
		}
		d.metrics.IncSent(msg.Template)
	}
	return nil
}
