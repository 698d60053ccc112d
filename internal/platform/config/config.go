package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"chimera/internal/narrative"
)

// Server captures process-level configuration for the presentation server.
type Server struct {
	Addr             string
	LogLevel         string
	LogFormat        string
	APIKey           string
	NarrativeModel   string
	DefaultSubject   string
	Speed            float64
	MaxPresentations int
	ShutdownTimeout  time.Duration
}

// NarrativeEnabled reports whether a model credential is configured.
func (s Server) NarrativeEnabled() bool {
	return s.APIKey != ""
}

// FromEnv builds a Server config from environment variables so main stays lean.
// Unset variables fall back to defaults; malformed ones are an error.
func FromEnv() (Server, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Server, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	cfg := Server{
		Addr:            get("CHIMERA_ADDR", ":8080"),
		LogLevel:        get("CHIMERA_LOG_LEVEL", "info"),
		LogFormat:       get("CHIMERA_LOG_FORMAT", "json"),
		NarrativeModel:  get("CHIMERA_NARRATIVE_MODEL", narrative.DefaultModel),
		DefaultSubject:  get("CHIMERA_SUBJECT", "Ahmad Razak"),
		ShutdownTimeout: 10 * time.Second,
	}
	// API_KEY is what the hosted build injects; GEMINI_API_KEY is the usual
	// local name.
	cfg.APIKey = get("API_KEY", get("GEMINI_API_KEY", ""))

	speed, err := strconv.ParseFloat(get("CHIMERA_SPEED", "1"), 64)
	if err != nil || speed <= 0 {
		return Server{}, fmt.Errorf("CHIMERA_SPEED must be a positive number, got %q", get("CHIMERA_SPEED", ""))
	}
	cfg.Speed = speed

	limit, err := strconv.Atoi(get("CHIMERA_MAX_PRESENTATIONS", "16"))
	if err != nil || limit < 1 {
		return Server{}, fmt.Errorf("CHIMERA_MAX_PRESENTATIONS must be a positive integer, got %q", get("CHIMERA_MAX_PRESENTATIONS", ""))
	}
	cfg.MaxPresentations = limit

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return Server{}, fmt.Errorf("CHIMERA_LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	return cfg, nil
}
