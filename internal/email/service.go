package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/mail"
	"strings"
	"time"

	"github.com/gatherly/server/internal/config"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// Service sends transactional email through Resend. When disabled in
// config it logs the send and returns nil, so callers never branch on it.
type Service struct {
	config       config.EmailConfig
	resendClient *resend.Client
	templates    *template.Template
	logger       zerolog.Logger
}

// ConfirmationData holds data for rendering the RSVP confirmation email.
type ConfirmationData struct {
	Name        string
	EventTitle  string
	Location    string
	EventDate   string
	CurrentYear int
}

func NewService(cfg config.EmailConfig, logger zerolog.Logger) (*Service, error) {
	if cfg.Enabled {
		if err := validateEmailAddress(cfg.From); err != nil {
			return nil, fmt.Errorf("invalid sender email in config: %w", err)
		}
	}

	templates, err := template.New("email").Parse(confirmationTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse email templates: %w", err)
	}

	svc := &Service{
		config:    cfg,
		templates: templates,
		logger:    logger.With().Str("component", "email").Logger(),
	}
	if cfg.Enabled {
		svc.resendClient = resend.NewClient(cfg.ResendAPIKey)
	}
	return svc, nil
}

// SendRSVPConfirmation emails an attendee that their spot is confirmed.
func (s *Service) SendRSVPConfirmation(ctx context.Context, to, name, eventTitle, location string, eventDate time.Time) error {
	if err := validateEmailAddress(to); err != nil {
		return fmt.Errorf("invalid recipient email: %w", err)
	}

	if !s.config.Enabled {
		s.logger.Info().
			Str("to", to).
			Str("event", eventTitle).
			Msg("email service disabled, skipping rsvp confirmation")
		return nil
	}

	data := ConfirmationData{
		Name:        name,
		EventTitle:  eventTitle,
		Location:    location,
		EventDate:   eventDate.Format("Monday, January 2, 2006 at 15:04 MST"),
		CurrentYear: time.Now().Year(),
	}
	htmlBody, err := s.renderTemplate("confirmation", data)
	if err != nil {
		return fmt.Errorf("render confirmation template: %w", err)
	}

	subject := fmt.Sprintf("You're in: %s", eventTitle)
	if err := s.sendViaResend(ctx, to, subject, htmlBody); err != nil {
		return fmt.Errorf("send rsvp confirmation: %w", err)
	}

	s.logger.Info().
		Str("to", to).
		Str("event", eventTitle).
		Msg("rsvp confirmation sent")
	return nil
}

// validateEmailAddress checks format and rejects header injection attempts.
func validateEmailAddress(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email format: %w", err)
	}
	if strings.ContainsAny(addr.Address, "\r\n") {
		return fmt.Errorf("invalid email address: contains newline characters")
	}
	return nil
}

func (s *Service) renderTemplate(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

const confirmationTemplate = `{{define "confirmation"}}<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #1a1a1a;">
  <h2>See you there, {{.Name}}!</h2>
  <p>Your spot for <strong>{{.EventTitle}}</strong> is confirmed.</p>
  <p>
    <strong>When:</strong> {{.EventDate}}<br>
    <strong>Where:</strong> {{.Location}}
  </p>
  <p style="color: #666; font-size: 12px;">&copy; {{.CurrentYear}} Gatherly</p>
</body>
</html>{{end}}`
