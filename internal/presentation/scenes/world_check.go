package scenes

import (
	"fmt"
	"strings"
	"time"

	"chimera/internal/presentation/models"
)

const (
	worldCheckDuration = 6 * time.Second
	worldCheckTick     = 100 * time.Millisecond
	worldCheckLogTick  = 150 * time.Millisecond
	worldCheckLogLines = 6
	worldCheckHold     = 1500 * time.Millisecond
)

// ScreeningDatabases are the lists the screening scene pretends to scan.
var ScreeningDatabases = []string{
	"OFAC Sanctions List",
	"UN Security Council Consolidated List",
	"EU Financial Sanctions",
	"Interpol Red Notices",
	"HM Treasury List",
	"FBI Most Wanted",
	"PEP Global Database",
	"Adverse Media - Global",
	"Regulatory Enforcement List",
	"Terrorism Exclusion List",
}

// WorldCheck is the global sanctions/PEP screening.
type WorldCheck struct{}

func (WorldCheck) Kind() models.Scene { return models.SceneWorldCheck }

func (WorldCheck) Play(m Mount) {
	var (
		elapsed  time.Duration
		lines    []string
		finished bool
	)
	frame := models.Frame{
		Scene:    models.SceneWorldCheck,
		Headline: "SCANNING",
		Caption:  ScreeningDatabases[0],
	}
	m.Emit(frame)

	m.Timers.Every(worldCheckLogTick, func() bool {
		if finished {
			return false
		}
		line := fmt.Sprintf("Scanning record #%s... OK", recordID(m))
		lines = append([]string{line}, lines...)
		if len(lines) > worldCheckLogLines {
			lines = lines[:worldCheckLogLines]
		}
		return true
	})

	m.Timers.Every(worldCheckTick, func() bool {
		elapsed += worldCheckTick
		progress := min(float64(elapsed)/float64(worldCheckDuration)*100, 100)
		frame.Progress = progress
		frame.Caption = databaseAt(progress)
		frame.Lines = append([]string(nil), lines...)
		if progress >= 100 {
			finished = true
			frame.Headline = "CLEARED"
			frame.Caption = fmt.Sprintf("%d databases scanned // 0 matches", len(ScreeningDatabases))
			frame.Finished = true
			m.Emit(frame)
			m.Timers.After(worldCheckHold, m.Done)
			return false
		}
		m.Emit(frame)
		return true
	})
}

// databaseAt picks the database shown at a given progress.
func databaseAt(progress float64) string {
	idx := int(progress / 100 * float64(len(ScreeningDatabases)))
	if idx >= len(ScreeningDatabases) {
		idx = len(ScreeningDatabases) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return ScreeningDatabases[idx]
}

const recordAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func recordID(m Mount) string {
	var b strings.Builder
	for range 5 {
		b.WriteByte(recordAlphabet[m.Rand.IntN(len(recordAlphabet))])
	}
	return b.String()
}
