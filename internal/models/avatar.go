// internal/models/avatar.go
package models

import "time"

// Avatar is a target-audience profile. Briefs reference avatars by a
// loose identifier; no foreign-key integrity is enforced.
type Avatar struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	AgeRange    string    `json:"age_range"`
	Gender      string    `json:"gender,omitempty"`
	Interests   []string  `json:"interests"`
	PainPoints  []string  `json:"pain_points"`
	Goals       []string  `json:"goals"`
	IncomeLevel string    `json:"income_level,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// AvatarCreate is the creation payload.
type AvatarCreate struct {
	Name        string   `json:"name" binding:"required"`
	AgeRange    string   `json:"age_range" binding:"required"`
	Gender      string   `json:"gender"`
	Interests   []string `json:"interests"`
	PainPoints  []string `json:"pain_points"`
	Goals       []string `json:"goals"`
	IncomeLevel string   `json:"income_level"`
}
