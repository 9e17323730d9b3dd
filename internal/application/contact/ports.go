package contact

import "context"

// EmailMessage courrier sortant du relais de contact.
type EmailMessage struct {
	Subject string
	Body    string
	ReplyTo string
}

// Mailer envoie le message vers la boîte de réception configurée.
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// MessageRelay pousse le message vers le canal de messagerie (WhatsApp).
type MessageRelay interface {
	Send(ctx context.Context, body string) error
}
