// Package notify delivers the side effects of booking events: the email that
// tells the site owner about a fresh reservation and the confirmation
// artifact written per status change.
package notify

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/gomail.v2"

	"github.com/filski95/web-app-challets/internal/booking"
)

// MailSender emails reservation notifications over SMTP.
type MailSender struct {
	dialer *gomail.Dialer
	from   string
	to     string
	// Guests are Polish; prices in the body follow Polish number formatting.
	printer *message.Printer
}

type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	// To is the address notified about each new reservation.
	To string
}

func NewMailSender(cfg MailConfig) *MailSender {
	return &MailSender{
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:    cfg.User,
		to:      cfg.To,
		printer: message.NewPrinter(language.Polish),
	}
}

func (s *MailSender) ReservationCreated(_ context.Context, ev booking.CreatedEvent) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.to)
	m.SetHeader("Subject", fmt.Sprintf("New reservation %s", ev.Number))

	body := fmt.Sprintf(
		"Reservation %s\nGuest: %s %s <%s>\nStay: %s to %s\nTotal: %s zl\n",
		ev.Number,
		ev.FirstName, ev.Surname, ev.Email,
		ev.StartDate.Format(time.DateOnly), ev.EndDate.Format(time.DateOnly),
		s.printer.Sprintf("%d", ev.TotalPrice),
	)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("sending reservation mail: %w", err)
	}

	return nil
}
