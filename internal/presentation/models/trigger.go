package models

import "time"

// Trigger is what caused a transition.
type Trigger string

const (
	TriggerStart         Trigger = "start"
	TriggerSceneComplete Trigger = "scene_complete"
	TriggerDelayElapsed  Trigger = "delay_elapsed"
	TriggerReset         Trigger = "reset"
)

// Transition records one state change.
type Transition struct {
	From    State     `json:"from"`
	To      State     `json:"to"`
	Trigger Trigger   `json:"trigger"`
	At      time.Time `json:"at"`
}
