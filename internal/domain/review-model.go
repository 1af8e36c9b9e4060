package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review holds one user's review of the site. UserID is nullable because
// rows imported from the pre-auth era have no owner.
type Review struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    *string   `gorm:"type:uuid;index" json:"user_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Rating    string    `gorm:"type:varchar(5);not null" json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
