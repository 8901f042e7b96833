package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/vertexcare/clinicbook/config"
	"github.com/vertexcare/clinicbook/internal/email"
	"github.com/vertexcare/clinicbook/internal/kafka"
	kafkaGo "github.com/segmentio/kafka-go"
)

// The worker drains the notifications topic and mails the clinic inbox
// about every new appointment. Delivery is best-effort: a failed send is
// logged and the offset still advances.
func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.SMTP.Host == "" {
		log.Fatal("SMTP_HOST is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	sender := email.NewSender(cfg.SMTP)

	err = consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
		var event kafka.AppointmentEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Printf("decode event error: %v", err)
			return nil
		}
		if event.Type != "appointment_created" {
			return nil
		}
		if err := sender.Send(ctx, event); err != nil {
			log.Printf("send email for appointment %s: %v", event.ID, err)
		}
		return nil
	})
	if err != nil && ctx.Err() == nil {
		log.Fatalf("consumer stopped: %v", err)
	}
	log.Println("worker shut down")
}
