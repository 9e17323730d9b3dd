// Package whatsapp implémente le port MessageRelay via l'API Twilio,
// le canal utilisé par le site pour notifier le propriétaire.
package whatsapp

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/amakita/arsel-docs-api/internal/application/contact"
	"github.com/amakita/arsel-docs-api/pkg/config"
)

// TwilioRelay pousse les messages vers un numéro WhatsApp via Twilio.
type TwilioRelay struct {
	client *twilio.RestClient
	from   string
	to     string
}

var _ contact.MessageRelay = (*TwilioRelay)(nil)

// NewTwilioRelay construit le client REST Twilio depuis la configuration.
func NewTwilioRelay(cfg config.TwilioConfig) *TwilioRelay {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &TwilioRelay{
		client: client,
		from:   "whatsapp:" + cfg.WhatsAppFrom,
		to:     "whatsapp:" + cfg.WhatsAppTo,
	}
}

// Send crée le message WhatsApp. Le SDK Twilio ne prend pas de contexte;
// l'appel reste borné par les timeouts HTTP du client REST.
func (r *TwilioRelay) Send(_ context.Context, body string) error {
	params := &twilioapi.CreateMessageParams{}
	params.SetFrom(r.from)
	params.SetTo(r.to)
	params.SetBody(body)

	if _, err := r.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("envoi WhatsApp: %w", err)
	}
	return nil
}
