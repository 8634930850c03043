package email

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/lamalex/odu-grants/pkg/slogx"
)

// MailgunConfig holds the configuration for Mailgun delivery.
type MailgunConfig struct {
	Domain string
	APIKey string
	From   string
}

func (c MailgunConfig) validate() error {
	if c.Domain == "" || c.APIKey == "" || c.From == "" {
		return errors.New("email: incomplete mailgun configuration")
	}
	return nil
}

// MailgunSender implements Sender on top of the Mailgun messages API.
type MailgunSender struct {
	cfg MailgunConfig
	mg  *mailgun.MailgunImpl
}

func NewMailgunSender(cfg MailgunConfig) (*MailgunSender, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &MailgunSender{
		cfg: cfg,
		mg:  mailgun.NewMailgun(cfg.Domain, cfg.APIKey),
	}, nil
}

func (s *MailgunSender) SendFromTemplate(ctx context.Context, to, subject, template string, data map[string]string) error {
	log := slogx.FromContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	message := s.mg.NewMessage(s.cfg.From, subject, "")
	message.SetTemplate(template)
	if err := message.AddRecipient(to); err != nil {
		return fmt.Errorf("email: bad recipient: %w", err)
	}
	for key, value := range data {
		if err := message.AddTemplateVariable(key, value); err != nil {
			return fmt.Errorf("email: template variable %q: %w", key, err)
		}
	}

	_, id, err := s.mg.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("email: send failed: %w", err)
	}

	log.Debug("email queued", "message_id", id, "template", template)
	return nil
}
