package models

import "time"

// Review is a user's rating plus optional comment on a title. The
// (user_id, anime_id) pair is unique at the store level; the composite
// index is the real duplicate guard, application pre-checks only give a
// friendlier error.
type Review struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_anime"`
	AnimeID   int64     `json:"anime_id" gorm:"not null;uniqueIndex:idx_reviews_user_anime"`
	Rating    int       `json:"rating" gorm:"not null;check:rating >= 0 AND rating <= 10"`
	Comment   *string   `json:"comment,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User  User  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Anime Anime `json:"-" gorm:"foreignKey:AnimeID;constraint:OnDelete:CASCADE;"`
}

func (Review) TableName() string {
	return "reviews"
}
