package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	CategoryFavorites = "favorites"
	CategoryWatched   = "watched"
)

// Movie is one catalog entry saved by a user. IdbID is the external movie
// database identifier; a user cannot save the same catalog movie twice.
type Movie struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string         `gorm:"type:uuid;not null;uniqueIndex:uidx_movies_user_idb;index:idx_movies_user_category" json:"user_id"`
	IdbID       int            `gorm:"not null;uniqueIndex:uidx_movies_user_idb" json:"idb_id"`
	Category    string         `gorm:"type:varchar(20);not null;index:idx_movies_user_category" json:"category"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	PosterPath  *string        `gorm:"type:varchar(255)" json:"poster_path,omitempty"`
	VoteAverage float64        `gorm:"not null" json:"vote_average"`
	Genres      datatypes.JSON `gorm:"type:jsonb;not null" json:"genres"`
	ReleaseDate string         `gorm:"type:varchar(10);not null" json:"release_date"`
	Tagline     *string        `gorm:"type:varchar(255)" json:"tagline,omitempty"`
	Runtime     *int           `json:"runtime,omitempty"`
	Budget      *int           `json:"budget,omitempty"`
	Overview    string         `gorm:"type:text;not null" json:"overview"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (m *Movie) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func ValidCategory(c string) bool {
	return c == CategoryFavorites || c == CategoryWatched
}
