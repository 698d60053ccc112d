// Package narrative writes the cosmetic executive summary shown on the report
// slide. Generation never fails: every problem degrades to a fixed
// notification string.
package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"chimera/internal/narrative/metrics"
)

const (
	MissingKeyMessage     = "System Notification: API Key missing. Unable to generate narrative report."
	OfflineMessage        = "System Notification: Report generation offline. Manual review recommended."
	EmptyNarrativeMessage = "Analysis complete. Profile cleared."
)

const (
	outcomeOK         = "ok"
	outcomeEmpty      = "empty"
	outcomeOffline    = "offline"
	outcomeMissingKey = "missing_key"
)

// TextModel is a hosted model that answers a prompt with a JSON document.
type TextModel interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// Generator produces report narratives.
type Generator struct {
	model   TextModel
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// New returns a generator backed by model. A nil model means no credential
// is configured; Generate then answers MissingKeyMessage without calling out.
func New(model TextModel, logger *slog.Logger, m *metrics.Metrics) *Generator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Generator{
		model:   model,
		logger:  logger,
		metrics: m,
		tracer:  otel.Tracer("chimera/narrative"),
	}
}

// Generate returns a short narrative for the subject. It always returns text.
func (g *Generator) Generate(ctx context.Context, name string, verified bool, score int) string {
	if g.model == nil {
		g.metrics.IncrementOutcome(outcomeMissingKey)
		return MissingKeyMessage
	}

	ctx, span := g.tracer.Start(ctx, "narrative.generate", trace.WithAttributes(
		attribute.Bool("chimera.subject.verified", verified),
		attribute.Int("chimera.subject.score", score),
	))
	defer span.End()

	start := time.Now()
	raw, err := g.model.GenerateJSON(ctx, Prompt(name, verified, score))
	g.metrics.ObserveLatency(time.Since(start))
	if err == nil {
		var text string
		text, err = parseNarrative(raw)
		if err == nil {
			if text == "" {
				g.metrics.IncrementOutcome(outcomeEmpty)
				return EmptyNarrativeMessage
			}
			g.metrics.IncrementOutcome(outcomeOK)
			return text
		}
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, "narrative generation failed")
	g.metrics.IncrementOutcome(outcomeOffline)
	g.logger.WarnContext(ctx, "narrative generation failed",
		"error", err,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return OfflineMessage
}

// Prompt builds the request sent to the model.
func Prompt(name string, verified bool, score int) string {
	status := "Failed"
	if verified {
		status = "Verified Biometrically"
	}
	var b strings.Builder
	b.WriteString("Act as an advanced automated compliance system.\n")
	b.WriteString("Generate a short, precise, futuristic executive summary (max 3 sentences) for the following compliance scan:\n\n")
	fmt.Fprintf(&b, "Subject: %s\n", name)
	fmt.Fprintf(&b, "eKYC Status: %s\n", status)
	b.WriteString("World-Check: 0 Hits (Clean)\n")
	fmt.Fprintf(&b, "AML Risk Score: %d/100 (Low)\n\n", score)
	b.WriteString("Tone: Robotic, Secure, Authoritative.\n")
	b.WriteString(`Output JSON format with a single key "narrative".`)
	return b.String()
}

// parseNarrative extracts the "narrative" value. An empty body counts as an
// empty object. A missing, null or blank value yields "". Non-string values
// are rendered as text.
func parseNarrative(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = "{}"
	}
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return "", fmt.Errorf("decode model response: %w", err)
	}
	if doc == nil {
		return "", fmt.Errorf("decode model response: null document")
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return "", nil
	}
	switch v := obj["narrative"].(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(v), nil
	case bool:
		if !v {
			return "", nil
		}
		return "true", nil
	case float64:
		if v == 0 {
			return "", nil
		}
		return fmt.Sprint(v), nil
	default:
		out, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}
