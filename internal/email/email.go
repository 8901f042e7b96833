package email

import (
	"context"
	"fmt"

	"github.com/vertexcare/clinicbook/config"
	"github.com/vertexcare/clinicbook/internal/kafka"
	"gopkg.in/gomail.v2"
)

// Sender mails the clinic inbox about new appointments over SMTP. The
// reply-to is the patient's address when they left one, so staff can answer
// directly from the notification mail.
type Sender struct {
	cfg config.SMTPConfig
}

func NewSender(cfg config.SMTPConfig) *Sender {
	return &Sender{cfg: cfg}
}

func (s *Sender) Send(ctx context.Context, event kafka.AppointmentEvent) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.User, event.FullName)
	m.SetHeader("To", s.cfg.ClinicInbox)
	m.SetHeader("Reply-To", replyTo(event, s.cfg.ClinicInbox))
	m.SetHeader("Subject", subject(event))
	m.SetBody("text/plain", body(event))

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	return d.DialAndSend(m)
}

func subject(event kafka.AppointmentEvent) string {
	return "New Appointment Booked - " + event.FullName
}

func replyTo(event kafka.AppointmentEvent, fallback string) string {
	if event.EmailAddress != "" {
		return event.EmailAddress
	}
	return fallback
}

func body(event kafka.AppointmentEvent) string {
	email := event.EmailAddress
	if email == "" {
		email = "N/A"
	}
	doctor := event.DoctorName
	if doctor == "" {
		doctor = "Not specified"
	}

	return fmt.Sprintf(`New Appointment Details:

Name: %s
Mobile: %s
Email: %s
Department: %s
Doctor: %s
Reason: %s

Booked At: %s

---
Reply to this email to contact the patient directly.
`, event.FullName, event.MobileNumber, email, event.Department, doctor, event.ReasonForVisit, event.CreatedAt.Format("02 Jan 2006 15:04"))
}
