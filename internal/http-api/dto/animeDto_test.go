package dto

import (
	"testing"

	"animehub/internal/http-api/models"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestCreateAnimeDTOToModel(t *testing.T) {
	externalID := int64(40)
	d := CreateAnimeDTO{
		Title:      "Cowboy Bebop",
		Synopsis:   "Space bounty hunters.",
		Year:       1998,
		Studio:     strPtr("Sunrise"),
		BannerURL:  strPtr("https://img.example/banner.png"),
		ExternalID: &externalID,
		GenreIDs:   []int64{1, 2},
	}

	a := d.ToModel()

	assert.Equal(t, "Cowboy Bebop", a.Title)
	assert.Equal(t, 1998, a.Year)
	assert.Equal(t, "Sunrise", *a.Studio)
	assert.Equal(t, "https://img.example/banner.png", *a.BannerURL)
	assert.Equal(t, int64(40), *a.ExternalID)
}

func TestUpdateAnimeDTOApplyTo(t *testing.T) {
	a := models.Anime{
		Title:    "Old Title",
		Synopsis: "Old synopsis",
		Year:     1998,
	}

	d := UpdateAnimeDTO{
		Title:     strPtr("New Title"),
		BannerURL: strPtr("https://img.example/banner2.png"),
	}
	d.ApplyTo(&a)

	assert.Equal(t, "New Title", a.Title)
	assert.Equal(t, "https://img.example/banner2.png", *a.BannerURL)
	// untouched fields survive a partial update
	assert.Equal(t, "Old synopsis", a.Synopsis)
	assert.Equal(t, 1998, a.Year)
}
