package notification

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/futuresmile/clinic-api/internal/model"
	"github.com/futuresmile/clinic-api/internal/repository"
	"github.com/futuresmile/clinic-api/pkg/logger"
	"github.com/futuresmile/clinic-api/pkg/queue"
)

// Notifier tells patients about appointment status changes.
type Notifier interface {
	NotifyStatusChange(ctx context.Context, apt *model.Appointment) error
}

// SMTPConfig holds mail transport settings.
type SMTPConfig struct {
	Host     string `yaml:"host" envconfig:"SMTP_HOST"`
	Port     int    `yaml:"port" envconfig:"SMTP_PORT"`
	Username string `yaml:"username" envconfig:"SMTP_USERNAME"`
	Password string `yaml:"password" envconfig:"SMTP_PASSWORD"`
	From     string `yaml:"from" envconfig:"SMTP_FROM"`
}

type emailNotifier struct {
	dialer   *gomail.Dialer
	from     string
	patients repository.PatientRepository
	logger   *logger.Logger
}

// NewEmailNotifier sends status emails over SMTP. Patients without an email
// address are skipped silently.
func NewEmailNotifier(cfg SMTPConfig, patients repository.PatientRepository, log *logger.Logger) Notifier {
	return &emailNotifier{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:     cfg.From,
		patients: patients,
		logger:   log.With("notification"),
	}
}

func (n *emailNotifier) NotifyStatusChange(ctx context.Context, apt *model.Appointment) error {
	patient, err := n.patients.Get(ctx, apt.PatientID)
	if err != nil {
		return fmt.Errorf("failed to load patient for notification: %w", err)
	}
	if patient.Email == nil || *patient.Email == "" {
		n.logger.Debug("patient has no email, skipping notification", "booking_id", apt.BookingID)
		return nil
	}

	subject, body := renderStatusEmail(apt, patient.FullName)
	if subject == "" {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", n.from)
	msg.SetHeader("To", *patient.Email)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func renderStatusEmail(apt *model.Appointment, patientName string) (subject, body string) {
	switch apt.Status {
	case model.AppointmentStatusConfirmed:
		subject = fmt.Sprintf("Appointment %s confirmed", apt.BookingID)
		body = fmt.Sprintf(
			"Hello %s,\n\nYour %s appointment on %s at %s is confirmed.\nPlease arrive by %s.\n",
			patientName, apt.ServiceName, apt.AppointmentDate, apt.AppointmentTime,
			queue.RecommendedArrivalTime(apt.AppointmentTime),
		)
	case model.AppointmentStatusCancelled:
		subject = fmt.Sprintf("Appointment %s cancelled", apt.BookingID)
		body = fmt.Sprintf(
			"Hello %s,\n\nYour %s appointment on %s at %s has been cancelled.\n",
			patientName, apt.ServiceName, apt.AppointmentDate, apt.AppointmentTime,
		)
	}
	return subject, body
}

// NewNoop returns a Notifier that does nothing, for environments without
// SMTP access.
func NewNoop() Notifier {
	return noopNotifier{}
}

type noopNotifier struct{}

func (noopNotifier) NotifyStatusChange(context.Context, *model.Appointment) error {
	return nil
}
