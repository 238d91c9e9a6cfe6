package models

// explicit join model so the pair carries its own unique index
type AnimeGenre struct {
	ID      int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	AnimeID int64 `json:"anime_id" gorm:"not null;uniqueIndex:idx_anime_genres_pair"`
	GenreID int64 `json:"genre_id" gorm:"not null;uniqueIndex:idx_anime_genres_pair"`
}

func (AnimeGenre) TableName() string {
	return "anime_genres"
}
