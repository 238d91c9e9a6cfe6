package models

import "time"

type Season struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	AnimeID   int64     `json:"anime_id" gorm:"not null;uniqueIndex:idx_seasons_anime_number"`
	Number    int       `json:"number" gorm:"not null;uniqueIndex:idx_seasons_anime_number"`
	Episodes  int       `json:"episodes" gorm:"not null;default:0"`
	Year      int       `json:"year"`
	Status    *string   `json:"status,omitempty"` // e.g. "airing", "finished"
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Anime *Anime `json:"anime,omitempty" gorm:"foreignKey:AnimeID;constraint:OnDelete:CASCADE;"`
}

func (Season) TableName() string {
	return "seasons"
}
