package voice

import (
	"github.com/google/uuid"

	"github.com/agrihub/backend/internal/domain/voice"
)

// DispatchRequest carries a voice transcript to act on
type DispatchRequest struct {
	Transcript string `json:"transcript" binding:"required"`
}

// DispatchResponse reports what the transcript was turned into
type DispatchResponse struct {
	Intent   *voice.Intent `json:"intent"`
	Action   string        `json:"action"`    // task_created, expense_recorded, ...
	RecordID uuid.UUID     `json:"record_id"` // ID of the created record
}
