// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Plan identifies a subscription tier.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanStarter Plan = "starter"
	PlanPro     Plan = "pro"
)

// ValidPlan reports whether p is one of the known subscription tiers.
func ValidPlan(p Plan) bool {
	switch p {
	case PlanFree, PlanStarter, PlanPro:
		return true
	}
	return false
}

// User represents a registered creator account. The password hash is never
// serialized; email is stored as entered but compared lowercase.
type User struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Name               string         `gorm:"not null" json:"name"`
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`
	Password           string         `gorm:"not null" json:"-"`
	Plan               Plan           `gorm:"default:free" json:"plan"`
	Niche              string         `json:"niche,omitempty"`
	Platforms          []string       `gorm:"serializer:json" json:"platforms,omitempty"`
	OnboardingComplete bool           `json:"onboarding_complete"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// Identity is the display-only subset of a user carried in session claims and
// returned on login. It is enough to render the dashboard chrome without a
// store lookup.
type Identity struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Plan  Plan   `json:"plan"`
	Niche string `json:"niche,omitempty"`
}

// Identity projects the display subset from a full user record.
func (u *User) Identity() Identity {
	return Identity{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Plan:  u.Plan,
		Niche: u.Niche,
	}
}
