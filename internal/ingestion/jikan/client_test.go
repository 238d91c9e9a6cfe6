package jikan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/anime", r.URL.Path)
		assert.Equal(t, "bebop", r.URL.Query().Get("q"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": [
				{"mal_id": 1, "title": "Cowboy Bebop", "year": 1998,
				 "genres": [{"mal_id": 1, "name": "Action"}]}
			],
			"pagination": {"last_visible_page": 1, "has_next_page": false}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	results, err := client.Search(context.Background(), "bebop", 5)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(1), results[0].MalID)
	assert.Equal(t, "Cowboy Bebop", results[0].Title)
	assert.Equal(t, "Action", results[0].Genres[0].Name)
}

func TestGetVideos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/anime/40/videos", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"promo": [
			{"title": "PV 1", "trailer": {"youtube_id": "abc", "url": "https://youtu.be/abc"}}
		]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	videos, err := client.GetVideos(context.Background(), 40)

	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "PV 1", videos[0].Title)
	assert.Equal(t, "abc", videos[0].Trailer.YoutubeID)
}

func TestRetryOnTooManyRequests(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"mal_id": 40, "title": "Naruto"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	anime, err := client.GetAnime(context.Background(), 40)

	require.NoError(t, err)
	assert.Equal(t, "Naruto", anime.Title)
	assert.Equal(t, int32(2), calls.Load())
}

func TestNoRetryOnNotFound(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.GetAnime(context.Background(), 999999)

	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "client errors must not be retried")
}
