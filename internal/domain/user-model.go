package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           string  `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Email        string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash *string `json:"-"` // nil for social-only accounts
	Picture      *string `json:"picture,omitempty"`

	Reviews     []Review             `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Movies      []Movie              `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ResetTokens []PasswordResetToken `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
