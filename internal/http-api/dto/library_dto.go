package dto

// AddLibraryEntryDTO for adding a season to the caller's library
type AddLibraryEntryDTO struct {
	SeasonID int64  `json:"season_id" binding:"required"`
	Status   string `json:"status" binding:"required"`
	Progress int    `json:"progress" binding:"omitempty,min=0"`
}

// UpdateLibraryEntryDTO for mutating status and/or episode progress
type UpdateLibraryEntryDTO struct {
	Status   *string `json:"status,omitempty"`
	Progress *int    `json:"progress,omitempty" binding:"omitempty,min=0"`
}
