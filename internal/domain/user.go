package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MinDisplayNameLength = 3
	MaxDisplayNameLength = 32
	MinPasswordLength    = 8
)

// User owns calculator sessions. Anyone may watch a session; only its owner
// may change it.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	DisplayName  string    `json:"displayName" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NormalizeDisplayName trims the name and reports whether its length is
// within bounds.
func NormalizeDisplayName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	return name, n >= MinDisplayNameLength && n <= MaxDisplayNameLength
}

// UserSession stores the hash of a refresh token issued at login.
type UserSession struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	RefreshTokenHash string    `json:"-" gorm:"not null"`
	ExpiresAt        time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt        time.Time `json:"createdAt"`
}
