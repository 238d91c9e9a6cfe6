package models

import "time"

// Moderation statuses for catalog entries. Only APPROVED titles are visible
// on public read paths.
const (
	ModerationPending  = "PENDING"
	ModerationApproved = "APPROVED"
	ModerationRejected = "REJECTED"
)

type Anime struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title         string    `json:"title" gorm:"not null"`
	Synopsis      string    `json:"synopsis" gorm:"not null;type:text"`
	Year          int       `json:"year" gorm:"not null"`
	Studio        *string   `json:"studio,omitempty"`
	PosterURL     string    `json:"poster_url" gorm:"not null"`
	BannerURL     *string   `json:"banner_url,omitempty"`
	Status        string    `json:"status" gorm:"not null;default:'PENDING';index"`
	AverageRating float64   `json:"average_rating" gorm:"not null;default:0;type:decimal(3,1)"`
	ExternalID    *int64    `json:"external_id,omitempty" gorm:"uniqueIndex"`
	SubmittedBy   *string   `json:"submitted_by,omitempty" gorm:"type:uuid;index"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Genres    []Genre  `json:"genres,omitempty" gorm:"many2many:anime_genres;constraint:OnDelete:CASCADE;"`
	Seasons   []Season `json:"seasons,omitempty" gorm:"foreignKey:AnimeID;constraint:OnDelete:CASCADE;"`
	Reviews   []Review `json:"reviews,omitempty" gorm:"foreignKey:AnimeID;constraint:OnDelete:CASCADE;"`
	Submitter *User    `json:"submitter,omitempty" gorm:"foreignKey:SubmittedBy;constraint:OnDelete:SET NULL;"`
}

func (Anime) TableName() string {
	return "animes"
}

// ValidModerationDecision reports whether a moderation transition target is
// one of the two allowed decisions.
func ValidModerationDecision(status string) bool {
	return status == ModerationApproved || status == ModerationRejected
}
