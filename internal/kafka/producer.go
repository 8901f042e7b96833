package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/vertexcare/clinicbook/internal/domain"
)

// AppointmentEvent is the wire form of a lifecycle notification. The worker
// mails the clinic on appointment_created; other types feed the event log.
type AppointmentEvent struct {
	Type           string    `json:"type"`
	ID             string    `json:"id"`
	FullName       string    `json:"full_name"`
	MobileNumber   string    `json:"mobile_number"`
	EmailAddress   string    `json:"email_address"`
	Department     string    `json:"department"`
	DoctorName     string    `json:"doctor_name"`
	ReasonForVisit string    `json:"reason_for_visit"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewAppointmentEvent(eventType string, a *domain.Appointment) AppointmentEvent {
	return AppointmentEvent{
		Type:           eventType,
		ID:             a.ID,
		FullName:       a.FullName,
		MobileNumber:   a.MobileNumber,
		EmailAddress:   a.EmailAddress,
		Department:     a.Department,
		DoctorName:     a.DoctorName,
		ReasonForVisit: a.ReasonForVisit,
		Status:         string(a.Status),
		CreatedAt:      a.CreatedAt,
	}
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	})
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
