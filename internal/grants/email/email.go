// Package email sends templated mail for the grant service. The orchestrator
// treats sending as fire-and-forget: failures propagate as generic errors,
// never as auth or grant error kinds.
package email

import "context"

// Sender delivers a templated message. Template variables are passed to the
// provider; the templates themselves live with the mail provider, not here.
type Sender interface {
	SendFromTemplate(ctx context.Context, to, subject, template string, data map[string]string) error
}
