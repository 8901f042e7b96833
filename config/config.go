package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Session  SessionConfig  `yaml:"session"`
	Admin    AdminConfig    `yaml:"-"`
	SMTP     SMTPConfig     `yaml:"-"`
}

type HTTPConfig struct {
	Address    string `yaml:"address"`
	SwaggerDir string `yaml:"swagger_dir"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type SessionConfig struct {
	CookieName string `yaml:"cookie_name"`
	TTLMinutes int    `yaml:"ttl_minutes"`
}

// AdminConfig and SMTPConfig hold secrets, so they come from the
// environment, never from the config file.
type AdminConfig struct {
	Username     string
	Password     string
	PasswordHash string
}

type SMTPConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	ClinicInbox string
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "clinic_session"
	}
	if cfg.Session.TTLMinutes == 0 {
		cfg.Session.TTLMinutes = 60
	}

	cfg.applyEnv()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	c.Admin.Username = os.Getenv("ADMIN_USERNAME")
	c.Admin.Password = os.Getenv("ADMIN_PASSWORD")
	c.Admin.PasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")

	c.SMTP.Host = os.Getenv("SMTP_HOST")
	c.SMTP.User = os.Getenv("SMTP_USER")
	c.SMTP.Password = os.Getenv("SMTP_PASS")
	c.SMTP.ClinicInbox = os.Getenv("CLINIC_INBOX")
	if c.SMTP.ClinicInbox == "" {
		c.SMTP.ClinicInbox = c.SMTP.User
	}
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
		c.SMTP.Port = p
	}

	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
}
