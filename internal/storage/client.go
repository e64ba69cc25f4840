// Package storage uploads document blobs to an object store over its
// HTTP gateway and resolves short-lived download URLs for them.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client abstracts the object store. Implemented by HTTPClient and by
// test stubs.
type Client interface {
	// Upload stores data under key and returns a URL for the stored object.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// DownloadURL returns a fresh presigned URL for an existing object.
	DownloadURL(ctx context.Context, key string) (string, error)
}

// HTTPClient talks to the storage gateway's REST API.
type HTTPClient struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewHTTPClient builds a client for the given gateway endpoint.
func NewHTTPClient(endpoint, token string) *HTTPClient {
	return &HTTPClient{
		endpoint:   endpoint,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type objectResponse struct {
	URL string `json:"url"`
}

func (c *HTTPClient) objectURL(key string) string {
	return fmt.Sprintf("%s/objects/%s", c.endpoint, url.PathEscape(key))
}

// Upload PUTs the blob to the gateway and returns the stored object's URL.
func (c *HTTPClient) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.objectURL(key), bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("storage returned status %d: %s", resp.StatusCode, string(body))
	}

	var obj objectResponse
	if err := json.Unmarshal(body, &obj); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if obj.URL == "" {
		return "", fmt.Errorf("storage returned no object URL")
	}
	return obj.URL, nil
}

// DownloadURL asks the gateway for a presigned URL for an existing object.
func (c *HTTPClient) DownloadURL(ctx context.Context, key string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.objectURL(key)+"/url", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create download URL request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to request download URL: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read download URL response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("storage returned status %d: %s", resp.StatusCode, string(body))
	}

	var obj objectResponse
	if err := json.Unmarshal(body, &obj); err != nil {
		return "", fmt.Errorf("failed to decode download URL response: %w", err)
	}
	if obj.URL == "" {
		return "", fmt.Errorf("storage returned no download URL")
	}
	return obj.URL, nil
}
