// Package contact relaie le formulaire de contact vers l'email et/ou
// WhatsApp selon le mode demandé.
package contact

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/amakita/arsel-docs-api/internal/application/dto"
	"github.com/amakita/arsel-docs-api/internal/domain"
	"github.com/amakita/arsel-docs-api/pkg/logger"
)

// UseCase relais du formulaire de contact.
type UseCase struct {
	mailer   Mailer
	relay    MessageRelay
	log      *logger.Logger
	validate *validator.Validate
}

// New construit le cas d'usage. mailer ou relay peuvent être nil si le
// canal n'est pas configuré; un envoi vers un canal absent échoue.
func New(mailer Mailer, relay MessageRelay, log *logger.Logger) *UseCase {
	return &UseCase{
		mailer:   mailer,
		relay:    relay,
		log:      log,
		validate: validator.New(),
	}
}

// Send valide la requête puis l'achemine: mode "mail" -> email seul,
// "whatsapp" -> relais seul, mode absent -> les deux canaux. Un mode
// inconnu est une erreur de validation. Un échec aval est renvoyé comme
// ErrRelayFailed générique, sans en distinguer la cause à l'appelant
// (le détail part dans les logs).
func (uc *UseCase) Send(ctx context.Context, in dto.ContactRequest) error {
	if err := uc.validate.Struct(in); err != nil {
		return domain.ErrInvalidInput
	}

	subject := fmt.Sprintf("Nouveau message de %s", in.Name)
	body := fmt.Sprintf("Nom: %s\nEmail: %s\nMessage:\n%s", in.Name, in.Email, in.Message)

	switch in.Mode {
	case dto.ContactModeMail:
		return uc.sendMail(ctx, subject, body, in.Email)
	case dto.ContactModeWhatsApp:
		return uc.sendWhatsApp(ctx, body)
	default: // mode absent: les deux canaux
		if err := uc.sendMail(ctx, subject, body, in.Email); err != nil {
			return err
		}
		return uc.sendWhatsApp(ctx, body)
	}
}

func (uc *UseCase) sendMail(ctx context.Context, subject, body, replyTo string) error {
	if uc.mailer == nil {
		return domain.ErrRelayFailed
	}
	if err := uc.mailer.Send(ctx, EmailMessage{Subject: subject, Body: body, ReplyTo: replyTo}); err != nil {
		if uc.log != nil {
			uc.log.Error().Err(err).Msg("relais email échoué")
		}
		return domain.ErrRelayFailed
	}
	return nil
}

func (uc *UseCase) sendWhatsApp(ctx context.Context, body string) error {
	if uc.relay == nil {
		return domain.ErrRelayFailed
	}
	message := "Nouveau message via le site:\n" + body
	if err := uc.relay.Send(ctx, message); err != nil {
		if uc.log != nil {
			uc.log.Error().Err(err).Msg("relais whatsapp échoué")
		}
		return domain.ErrRelayFailed
	}
	return nil
}
