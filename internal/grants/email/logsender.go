package email

import (
	"context"

	"github.com/lamalex/odu-grants/pkg/slogx"
)

// LogSender logs instead of delivering. Used in dev when no Mailgun
// credentials are configured, so invite flows stay exercisable locally.
type LogSender struct{}

func (LogSender) SendFromTemplate(ctx context.Context, to, subject, template string, data map[string]string) error {
	slogx.FromContext(ctx).Info("email suppressed (no mail provider configured)",
		"to", to,
		"subject", subject,
		"template", template,
		"data", data,
	)
	return nil
}
