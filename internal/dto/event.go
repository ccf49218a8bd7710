package dto

import (
	"encoding/json"
	"time"
)

type EventResponse struct {
	ID         int64           `json:"id"`
	EventType  string          `json:"eventType"`
	EntityType string          `json:"entityType"`
	EntityID   int64           `json:"entityId"`
	Details    json.RawMessage `json:"details,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}
