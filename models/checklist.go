package models

import "time"

const (
	StepStatusPending   = "pending"
	StepStatusCompleted = "completed"
)

type ChecklistItem struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	BusinessID  *string   `json:"business_id"` // nil on legacy unscoped rows
	StepKey     string    `json:"step_key"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ActionURL   string    `json:"action_url"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type Asset struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	BusinessID *string   `json:"business_id"`
	Type       string    `json:"type"` // 'logo' | 'flyer' | 'document'
	AssetURL   string    `json:"asset_url"`
	Title      string    `json:"title"`
	CreatedAt  time.Time `json:"created_at"`
	Deletable  bool      `json:"deletable"`
}

type DesignRequest struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	BusinessID  *string   `json:"business_id"`
	RequestType string    `json:"request_type"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
