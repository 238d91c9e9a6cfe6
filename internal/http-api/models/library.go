package models

import "time"

// Watch statuses for library entries.
const (
	WatchToWatch    = "TO_WATCH"
	WatchInProgress = "IN_PROGRESS"
	WatchWatched    = "WATCHED"
	WatchFavorite   = "FAVORITE"
)

// ValidWatchStatus reports whether status belongs to the fixed enumeration.
func ValidWatchStatus(status string) bool {
	switch status {
	case WatchToWatch, WatchInProgress, WatchWatched, WatchFavorite:
		return true
	}
	return false
}

type LibraryEntry struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_library_user_season" json:"user_id"`
	SeasonID  int64     `gorm:"not null;uniqueIndex:idx_library_user_season" json:"season_id"`
	Status    string    `gorm:"not null;default:'TO_WATCH'" json:"status"`
	Progress  int       `gorm:"not null;default:0" json:"progress"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	Season *Season `gorm:"foreignKey:SeasonID;constraint:OnDelete:CASCADE;" json:"season,omitempty"`
}

func (LibraryEntry) TableName() string {
	return "library_entries"
}
