package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/vertexcare/clinicbook/config"
	"github.com/vertexcare/clinicbook/internal/bootstrap"
	"github.com/vertexcare/clinicbook/internal/kafka"
	"github.com/vertexcare/clinicbook/internal/repository"
	"github.com/vertexcare/clinicbook/internal/service/appointments"
	"github.com/vertexcare/clinicbook/internal/service/auth"
	"github.com/vertexcare/clinicbook/internal/session"
)

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
	if cfg.Admin.Username == "" || (cfg.Admin.Password == "" && cfg.Admin.PasswordHash == "") {
		log.Fatal("ADMIN_USERNAME and ADMIN_PASSWORD (or ADMIN_PASSWORD_HASH) are required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	applyMigration(ctx, pool)

	sessionStore := session.NewRedisStore(cfg.Redis)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	sessionTTL := time.Duration(cfg.Session.TTLMinutes) * time.Minute
	authority := auth.NewAuthority(sessionStore, cfg.Admin, sessionTTL)

	appointmentRepo := repository.NewAppointmentRepository(pool)
	appointmentService := appointments.NewAppointmentService(
		appointmentRepo,
		authority,
		producer,
		appointments.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	if err := bootstrap.Run(ctx, cfg, appointmentService, authority); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func applyMigration(ctx context.Context, pool *pgxpool.Pool) {
	migration, err := os.ReadFile("db/migrations/001_init.sql")
	if err != nil {
		log.Printf("migration file not found, skipping: %v", err)
		return
	}
	if _, err := pool.Exec(ctx, string(migration)); err != nil {
		log.Printf("migration warning: %v", err)
		return
	}
	log.Println("migration applied")
}
