package imagehost

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to an imgbb-style image hosting API: upload takes an
// in-memory byte buffer and returns a stable URL, delete is keyed by an
// identifier parsed back out of that URL.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type uploadResponse struct {
	Data struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	} `json:"data"`
	Success bool `json:"success"`
}

// Upload pushes image bytes to the host and returns the public URL.
func (c *Client) Upload(ctx context.Context, data []byte, name string) (string, error) {
	form := url.Values{}
	form.Set("key", c.apiKey)
	form.Set("name", name)
	form.Set("image", base64.StdEncoding.EncodeToString(data))

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/upload",
		bytes.NewBufferString(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload failed with HTTP %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if !out.Success || out.Data.URL == "" {
		return "", fmt.Errorf("upload rejected by image host")
	}
	return out.Data.URL, nil
}

// Delete removes a previously uploaded image. The asset id is the last path
// segment of the stored URL; an unparseable URL is reported as an error so
// the caller can log it.
func (c *Client) Delete(ctx context.Context, imageURL string) error {
	id, err := assetID(imageURL)
	if err != nil {
		return err
	}

	form := url.Values{}
	form.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, "DELETE", c.baseURL+"/image/"+id,
		bytes.NewBufferString(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create delete request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete failed with HTTP %d: %s", resp.StatusCode, string(bodyBytes))
	}
	return nil
}

func assetID(imageURL string) (string, error) {
	u, err := url.Parse(imageURL)
	if err != nil {
		return "", fmt.Errorf("invalid image URL %q: %w", imageURL, err)
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) == 0 || segments[len(segments)-1] == "" {
		return "", fmt.Errorf("no asset id in image URL %q", imageURL)
	}
	id := segments[len(segments)-1]
	// strip a file extension if the host appends one
	if dot := strings.LastIndex(id, "."); dot > 0 {
		id = id[:dot]
	}
	return id, nil
}
