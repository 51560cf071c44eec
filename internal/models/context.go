package models

import (
	"encoding/json"
	"time"
)

// Profile is the career profile snapshot attached to a user.
// TargetRoles and Preferences are stored as JSONB and passed through opaquely.
type Profile struct {
	Background  string
	CareerGoals string
	TargetRoles json.RawMessage
	Preferences json.RawMessage
}

// ConversationMessage is one entry of a user's conversation log.
type ConversationMessage struct {
	Message              string
	Role                 string
	SpecialistsConsulted json.RawMessage
	CreatedAt            time.Time
}

// UserContext is a read-only projection assembled on demand for the agent
// orchestration layer. It is never a source of truth.
type UserContext struct {
	UserID         string
	Email          string
	Profile        *Profile
	Conversation   []ConversationMessage
	CachedAnalyses map[string]json.RawMessage
	LastLoginAt    *time.Time
}
