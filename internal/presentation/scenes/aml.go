package scenes

import (
	"math"
	"math/rand/v2"
	"time"

	"chimera/internal/presentation/models"
)

const (
	amlDuration = 5 * time.Second
	amlTick     = 100 * time.Millisecond
	amlHold     = 1500 * time.Millisecond
	amlPeak     = 75
)

// TransactionRisk is the fixed seven-day transaction history chart.
var TransactionRisk = []models.Bar{
	{Label: "M", Value: 10},
	{Label: "T", Value: 15},
	{Label: "W", Value: 8},
	{Label: "T", Value: 45},
	{Label: "F", Value: 12},
	{Label: "S", Value: 5},
	{Label: "S", Value: 8},
}

// AML is the anti-money-laundering score gauge.
type AML struct{}

func (AML) Kind() models.Scene { return models.SceneAML }

func (AML) Play(m Mount) {
	var elapsed time.Duration
	frame := models.Frame{
		Scene:    models.SceneAML,
		Headline: "ANALYZING...",
		Score:    intPtr(0),
		Bars:     TransactionRisk,
		Items:    amlChecks(false),
	}
	m.Emit(frame)

	m.Timers.Every(amlTick, func() bool {
		elapsed += amlTick
		progress := float64(elapsed) / float64(amlDuration)
		if progress >= 1 {
			frame.Progress = 100
			frame.Score = intPtr(FinalRiskScore)
			frame.Headline = "AML RISK: LOW"
			frame.Items = amlChecks(true)
			frame.Finished = true
			m.Emit(frame)
			m.Timers.After(amlHold, m.Done)
			return false
		}
		frame.Progress = progress * 100
		frame.Score = intPtr(AMLScore(progress, elapsed, m.Rand))
		m.Emit(frame)
		return true
	})
}

// AMLScore is the gauge curve: ramp to the peak over the first 40%, jitter
// around it until 70%, then fall linearly to FinalRiskScore.
func AMLScore(progress float64, elapsed time.Duration, r *rand.Rand) int {
	switch {
	case progress >= 1:
		return FinalRiskScore
	case progress < 0.4:
		return int(math.Floor(progress / 0.4 * amlPeak))
	case progress < 0.7:
		noise := math.Sin(float64(elapsed.Milliseconds())*0.01) * 5
		return int(math.Floor(amlPeak + noise + r.Float64()*5))
	default:
		p := (progress - 0.7) / 0.3
		return int(math.Floor(amlPeak - p*(amlPeak-FinalRiskScore)))
	}
}

func amlChecks(done bool) []models.Item {
	if done {
		return []models.Item{
			{Label: "Velocity Check", Status: "PASSED"},
			{Label: "Pattern Match", Status: "PASSED"},
			{Label: "Risk Tier", Status: "TIER 1 (SAFE)"},
		}
	}
	return []models.Item{
		{Label: "Velocity Check", Status: "ANALYZING..."},
		{Label: "Pattern Match", Status: "PENDING"},
		{Label: "Risk Tier", Status: "CALCULATING..."},
	}
}
