package jikan

// Response envelopes for the Jikan v4 API.

type AnimeListResponse struct {
	Data       []AnimeData `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

type AnimeResponse struct {
	Data AnimeData `json:"data"`
}

type Pagination struct {
	LastVisiblePage int  `json:"last_visible_page"`
	HasNextPage     bool `json:"has_next_page"`
}

type AnimeData struct {
	MalID    int64       `json:"mal_id"`
	Title    string      `json:"title"`
	TitleEn  string      `json:"title_english"`
	Synopsis string      `json:"synopsis"`
	Year     int         `json:"year"`
	Episodes int         `json:"episodes"`
	Images   ImageFormat `json:"images"`
	Genres   []GenreRef  `json:"genres"`
	Studios  []StudioRef `json:"studios"`
	Trailer  Trailer     `json:"trailer"`
}

type ImageFormat struct {
	JPG ImageSet `json:"jpg"`
}

type ImageSet struct {
	ImageURL      string `json:"image_url"`
	LargeImageURL string `json:"large_image_url"`
}

type GenreRef struct {
	MalID int64  `json:"mal_id"`
	Name  string `json:"name"`
}

type StudioRef struct {
	MalID int64  `json:"mal_id"`
	Name  string `json:"name"`
}

type Trailer struct {
	YoutubeID string `json:"youtube_id"`
	URL       string `json:"url"`
	EmbedURL  string `json:"embed_url"`
}

type VideosResponse struct {
	Data VideosData `json:"data"`
}

type VideosData struct {
	Promo []PromoVideo `json:"promo"`
}

type PromoVideo struct {
	Title   string  `json:"title"`
	Trailer Trailer `json:"trailer"`
}
