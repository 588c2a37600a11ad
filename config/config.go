package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// App holds the runtime configuration. Missing store settings switch the
// server into demo mode instead of failing startup.
type App struct {
	Port          string
	MongoURI      string
	MongoDB       string
	RedisAddr     string
	GeminiAPIKey  string
	AdminEmails   []string
	TripStartDate string
	WeatherAPIKey string
	PublicURL     string
	DemoMode      bool
}

var Cfg *App

func Load() *App {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	cfg := &App{
		Port:          port,
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDB:       os.Getenv("MONGO_DB"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		AdminEmails:   SplitEmails(os.Getenv("ADMIN_EMAILS")),
		TripStartDate: os.Getenv("TRIP_START_DATE"),
		WeatherAPIKey: os.Getenv("WEATHER_API_KEY"),
		PublicURL:     os.Getenv("PUBLIC_URL"),
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "tripdb"
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = "localhost:6379"
	}
	if cfg.TripStartDate == "" {
		cfg.TripStartDate = "2026-02-03"
	}
	if cfg.MongoURI == "" {
		cfg.DemoMode = true
		log.Println("MONGO_URI not set; running in demo mode with sample data")
	}

	Cfg = cfg
	return cfg
}

// SplitEmails parses a comma-separated allow-list, trimming blanks.
func SplitEmails(raw string) []string {
	var out []string
	for _, e := range strings.Split(raw, ",") {
		e = strings.TrimSpace(e)
		if e != "" {
			out = append(out, strings.ToLower(e))
		}
	}
	return out
}

// IsAdminEmail reports allow-list membership. An empty allow-list means
// nobody gets elevated access.
func IsAdminEmail(email string) bool {
	if email == "" || Cfg == nil {
		return false
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for _, e := range Cfg.AdminEmails {
		if e == email {
			return true
		}
	}
	return false
}
