package models

import (
	"time"

	id "chimera/pkg/domain"
)

// Presentation is the externally visible view of one registered session.
type Presentation struct {
	ID        id.PresentationID `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	Snapshot
}
