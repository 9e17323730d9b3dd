// Package mail implémente le port Mailer du formulaire de contact
// au-dessus d'un serveur SMTP (go-mail).
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/amakita/arsel-docs-api/internal/application/contact"
	"github.com/amakita/arsel-docs-api/pkg/config"
)

// SMTPSender envoie les messages de contact vers la boîte configurée.
type SMTPSender struct {
	client *gomail.Client
	from   string
	to     string
}

var _ contact.Mailer = (*SMTPSender)(nil)

// NewSMTPSender construit le client SMTP depuis la configuration.
func NewSMTPSender(cfg config.MailConfig) (*SMTPSender, error) {
	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
		gomail.WithTLSPortPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("client SMTP: %w", err)
	}
	return &SMTPSender{client: client, from: cfg.From, to: cfg.To}, nil
}

// Send transmet le message. L'adresse du visiteur part en Reply-To pour
// que la réponse depuis la boîte de réception lui revienne directement.
func (s *SMTPSender) Send(ctx context.Context, msg contact.EmailMessage) error {
	m := gomail.NewMsg()
	if err := m.From(s.from); err != nil {
		return fmt.Errorf("adresse expéditeur: %w", err)
	}
	if err := m.To(s.to); err != nil {
		return fmt.Errorf("adresse destinataire: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return fmt.Errorf("adresse reply-to: %w", err)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("envoi SMTP: %w", err)
	}
	return nil
}
