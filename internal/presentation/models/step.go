package models

// StepID names one of the Running-phase steps.
type StepID string

const (
	StepEKYC       StepID = "ekyc"
	StepWorldCheck StepID = "world-check"
	StepAML        StepID = "aml"
	StepInterim    StepID = "interim"
	StepEDD        StepID = "edd"
)

// Step describes a Running-phase step as shown on the step indicator.
type Step struct {
	ID    StepID `json:"id"`
	Title string `json:"title"`
}

// Steps is the fixed Running-phase sequence.
var Steps = []Step{
	{ID: StepEKYC, Title: "Identity Verification"},
	{ID: StepWorldCheck, Title: "Global Screening"},
	{ID: StepAML, Title: "AML Risk Scoring"},
	{ID: StepInterim, Title: "Preliminary Analysis"},
	{ID: StepEDD, Title: "Enhanced Due Diligence"},
}

// StepCount is N, the number of Running-phase steps.
var StepCount = len(Steps)

// StepStatus is the indicator state of one step.
type StepStatus string

const (
	StepPending  StepStatus = "PENDING"
	StepActive   StepStatus = "ACTIVE"
	StepComplete StepStatus = "COMPLETE"
)
