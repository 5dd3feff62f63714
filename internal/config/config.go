package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

var ErrMissingCredentials = errors.New("missing CMS credentials")

type HTTPServer struct {
	Host string
	Port string
}

type CMS struct {
	BaseURL       string
	APIKey        string
	DeliveryToken string
	Environment   string
}

type Personalization struct {
	BaseURL   string
	ProjectID string
}

// Overlay selects the durable KV backend holding browser-local reviews and votes.
type Overlay struct {
	Backend  string // bolt | redis | postgres | memory
	BoltPath string
}

type RedisCache struct {
	Host     string
	Port     string
	Password string
}

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type Config struct {
	HTTP            HTTPServer
	CMS             CMS
	Personalization Personalization
	Overlay         Overlay
	Redis           RedisCache
	Postgres        Postgres
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	cfg := &Config{
		HTTP:            *newHTTP(),
		CMS:             *newCMS(),
		Personalization: *newPersonalization(),
		Overlay:         *newOverlay(),
		Redis:           *newRedis(),
		Postgres:        *newPostgres(),
	}

	return cfg
}

// Validate reports whether the CMS can be queried at all. A missing key or
// delivery token is the only condition that fails the first bulk load outright.
func (c CMS) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("%w: CMS_API_KEY", ErrMissingCredentials)
	}
	if c.DeliveryToken == "" {
		return fmt.Errorf("%w: CMS_DELIVERY_TOKEN", ErrMissingCredentials)
	}
	return nil
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port: getenv("HTTP_PORT", "8080"),
		Host: getenv("HTTP_HOST", "localhost"),
	}
}

func newCMS() *CMS {
	return &CMS{
		BaseURL:       getenv("CMS_BASE_URL", "https://cdn.cinetrove.io"),
		APIKey:        getenv("CMS_API_KEY", ""),
		DeliveryToken: getenv("CMS_DELIVERY_TOKEN", ""),
		Environment:   getenv("CMS_ENVIRONMENT", "production"),
	}
}

func newPersonalization() *Personalization {
	return &Personalization{
		BaseURL:   getenv("PERSONALIZE_BASE_URL", "https://personalize.cinetrove.io"),
		ProjectID: getenv("PERSONALIZE_PROJECT_ID", ""),
	}
}

func newOverlay() *Overlay {
	return &Overlay{
		Backend:  getenv("OVERLAY_BACKEND", "bolt"),
		BoltPath: getenv("OVERLAY_BOLT_PATH", "cinetrove-overlay.db"),
	}
}

func newRedis() *RedisCache {
	return &RedisCache{
		Port:     getenv("REDIS_PORT", "6379"),
		Host:     getenv("REDIS_HOST", "redis"),
		Password: getenv("REDIS_PASSWORD", "shared"),
	}
}

func newPostgres() *Postgres {
	return &Postgres{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "admin"),
		Password: getenv("DB_PASSWORD", "shared"),
		DBName:   getenv("DB_NAME", "overlay"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		log.Printf("%s %s undefined. Using default value %s", logtag, key, defaultValue)
		return defaultValue
	}
	return val
}
