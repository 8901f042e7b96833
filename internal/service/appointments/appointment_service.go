package appointments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/vertexcare/clinicbook/internal/domain"
	"github.com/vertexcare/clinicbook/internal/kafka"
	"github.com/vertexcare/clinicbook/internal/repository"
)

type AppointmentUseCase interface {
	Submit(ctx context.Context, input SubmitInput) (*domain.Appointment, error)
	List(ctx context.Context, session *domain.Session) ([]domain.Appointment, error)
	UpdateStatus(ctx context.Context, session *domain.Session, id, status string) error
	Delete(ctx context.Context, session *domain.Session, id string) error
}

// Authorizer gates the privileged operations. It is consulted before the
// store is ever touched.
type Authorizer interface {
	Authorize(session *domain.Session) bool
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type AppointmentService struct {
	appointments       repository.AppointmentRepository
	auth               Authorizer
	producer           Producer
	notificationsTopic string
	publishTimeout     time.Duration
}

type SubmitInput struct {
	FullName       string `json:"fullName"`
	MobileNumber   string `json:"mobileNumber"`
	EmailAddress   string `json:"emailAddress"`
	Department     string `json:"department"`
	DoctorName     string `json:"doctorName"`
	ReasonForVisit string `json:"reasonForVisit"`
}

type AppointmentServiceOption func(*AppointmentService)

func WithNotificationsTopic(topic string) AppointmentServiceOption {
	return func(s *AppointmentService) {
		s.notificationsTopic = topic
	}
}

func WithPublishTimeout(timeout time.Duration) AppointmentServiceOption {
	return func(s *AppointmentService) {
		s.publishTimeout = timeout
	}
}

func NewAppointmentService(
	appointments repository.AppointmentRepository,
	auth Authorizer,
	producer Producer,
	opts ...AppointmentServiceOption,
) *AppointmentService {
	service := &AppointmentService{
		appointments:   appointments,
		auth:           auth,
		producer:       producer,
		publishTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Submit is the public booking path. Validation failures surface as
// domain.ErrValidation; once the record is stored the outcome no longer
// depends on notification delivery.
func (s *AppointmentService) Submit(ctx context.Context, input SubmitInput) (*domain.Appointment, error) {
	appointment, err := validate(input)
	if err != nil {
		return nil, err
	}

	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.notify(kafka.NewAppointmentEvent("appointment_created", appointment))
	return appointment, nil
}

func (s *AppointmentService) List(ctx context.Context, session *domain.Session) ([]domain.Appointment, error) {
	if !s.auth.Authorize(session) {
		return nil, domain.ErrUnauthorized
	}
	return s.appointments.List(ctx)
}

// UpdateStatus changes the status field only. An unknown id is logged and
// swallowed: the admin table refreshes on the next load and a racing delete
// should not bubble up as a failure.
func (s *AppointmentService) UpdateStatus(ctx context.Context, session *domain.Session, id, status string) error {
	if !s.auth.Authorize(session) {
		return domain.ErrUnauthorized
	}

	newStatus := domain.AppointmentStatus(status)
	if !newStatus.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}

	updated, err := s.appointments.UpdateStatus(ctx, id, newStatus)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Printf("status update for missing appointment %s ignored", id)
			return nil
		}
		return fmt.Errorf("update appointment status: %w", err)
	}

	s.notify(kafka.NewAppointmentEvent("appointment_"+strings.ToLower(status), updated))
	return nil
}

func (s *AppointmentService) Delete(ctx context.Context, session *domain.Session, id string) error {
	if !s.auth.Authorize(session) {
		return domain.ErrUnauthorized
	}

	if err := s.appointments.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Printf("delete for missing appointment %s ignored", id)
			return nil
		}
		return fmt.Errorf("delete appointment: %w", err)
	}

	s.notify(kafka.AppointmentEvent{Type: "appointment_deleted", ID: id})
	return nil
}

func validate(input SubmitInput) (*domain.Appointment, error) {
	fullName := strings.TrimSpace(input.FullName)
	mobile := strings.TrimSpace(input.MobileNumber)
	department := strings.TrimSpace(input.Department)

	if fullName == "" {
		return nil, fmt.Errorf("%w: full name is required", domain.ErrValidation)
	}
	if mobile == "" {
		return nil, fmt.Errorf("%w: mobile number is required", domain.ErrValidation)
	}
	if len(mobile) < 10 || len(mobile) > 15 {
		return nil, fmt.Errorf("%w: mobile number must be 10-15 characters", domain.ErrValidation)
	}
	if department == "" {
		return nil, fmt.Errorf("%w: department is required", domain.ErrValidation)
	}

	return &domain.Appointment{
		FullName:       fullName,
		MobileNumber:   mobile,
		EmailAddress:   strings.TrimSpace(input.EmailAddress),
		Department:     department,
		DoctorName:     strings.TrimSpace(input.DoctorName),
		ReasonForVisit: strings.TrimSpace(input.ReasonForVisit),
	}, nil
}

// notify hands the event off to a detached goroutine so a slow broker never
// blocks the response path. Failures are logged server-side only.
func (s *AppointmentService) notify(event kafka.AppointmentEvent) {
	if s.producer == nil || s.notificationsTopic == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.publishTimeout)
		defer cancel()

		if err := s.producer.Publish(ctx, s.notificationsTopic, event.ID, event); err != nil {
			log.Printf("WARNING: failed to publish %s event for appointment %s: %v", event.Type, event.ID, err)
		}
	}()
}

var _ AppointmentUseCase = (*AppointmentService)(nil)
