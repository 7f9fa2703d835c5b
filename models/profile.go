package models

import "time"

type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	DisplayName  string    `json:"display_name"`
	PhoneNumber  string    `json:"phone_number"`
	BusinessType *string   `json:"business_type"` // "new" | "old", nil until chosen
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type Notification struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	ActionURL *string   `json:"action_url"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type Message struct {
	ID         int64     `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

type TaskAssignment struct {
	ID           int64     `json:"id"`
	ConsultantID string    `json:"consultant_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
