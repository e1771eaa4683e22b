package config

import (
	"log"
	"os"
	"strings"
)

type Config struct {
	MongoURI       string
	Database       string
	Port           string
	TokenSecret    string
	StripeKey      string
	AllowedOrigins []string
}

// Load reads configuration from the environment. Missing store or secret
// settings are fatal; everything else has a development default.
func Load() *Config {
	cfg := &Config{
		MongoURI:    os.Getenv("MONGOURI"),
		Database:    getEnv("DATABASE", "resturent"),
		Port:        getEnv("PORT", "8080"),
		TokenSecret: os.Getenv("TOKEN_SECRET"),
		StripeKey:   os.Getenv("STRIPE_KEY"),
	}

	if cfg.MongoURI == "" {
		log.Fatal("MONGOURI environment variable not set")
	}
	if cfg.TokenSecret == "" {
		log.Fatal("TOKEN_SECRET environment variable not set")
	}
	if cfg.StripeKey == "" {
		log.Fatal("STRIPE_KEY environment variable not set")
	}

	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:5174")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
