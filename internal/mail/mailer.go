// Package mail composes and sends the agency-facing hours summary.
package mail

import (
	"context"
	"fmt"
	"strings"

	gomail "github.com/wneessen/go-mail"

	"github.com/spystrach/interimBot/internal/domain"
	"github.com/spystrach/interimBot/internal/render"
)

const subject = "[INTERIM] horaires réelles de missions"

// blockOrder fixes which agency block comes first in the body.
var blockOrder = []domain.Agency{domain.AgencyAppelMedical, domain.AgencyAdecco}

// SMTP carries the relay coordinates and credentials for one send. Values
// are read from the settings file at call time and not retained.
type SMTP struct {
	Host     string
	Port     int
	From     string
	Password string
	To       string
}

// SummaryBody renders the plain-text mail body: one block per agency,
// each listing only that agency's missions.
func SummaryBody(missions []*domain.Mission) (string, error) {
	var b strings.Builder
	for _, agency := range blockOrder {
		block, err := agencyBlock(agency, missions)
		if err != nil {
			return "", err
		}
		b.WriteString(block)
		b.WriteString("\n-------------------------\n")
	}
	b.WriteString("bot TELEGRAM @missions_interim_bot\nby mgl corp.")
	return b.String(), nil
}

func agencyBlock(agency domain.Agency, missions []*domain.Mission) (string, error) {
	var lines strings.Builder
	for _, m := range missions {
		if m.Agency != agency {
			continue
		}
		line, err := render.Format(m, render.ModeMail)
		if err != nil {
			return "", err
		}
		lines.WriteString(line)
		lines.WriteString("\n")
	}
	return fmt.Sprintf(
		"\nMissions avec %s :\n\nBonjour,\n\n"+
			"veuillez trouver ci-joint les horaires réelles des missions que j'ai effectuée :\n\n"+
			"%sCordialement,\n",
		agency, lines.String(),
	), nil
}

// SendSummary composes the summary for the given missions and submits it
// to the relay over STARTTLS with plain authentication.
func SendSummary(ctx context.Context, cfg SMTP, missions []*domain.Mission) error {
	body, err := SummaryBody(missions)
	if err != nil {
		return fmt.Errorf("composing summary: %w", err)
	}

	msg := gomail.NewMsg()
	if err := msg.From(cfg.From); err != nil {
		return fmt.Errorf("setting sender: %w", err)
	}
	if err := msg.To(cfg.To); err != nil {
		return fmt.Errorf("setting recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.From),
		gomail.WithPassword(cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("configuring mail client: %w", err)
	}
	defer client.Close()

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending summary mail: %w", err)
	}
	return nil
}
