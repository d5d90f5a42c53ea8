// Package media talks to an Immich-compatible asset server: uploads return
// opaque asset ids, and stored bytes are proxied back by id.
package media

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"
)

type ImmichClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewImmichClient(baseURL, apiKey string) *ImmichClient {
	return &ImmichClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// UploadAsset streams one file to the asset server and returns its id.
func (c *ImmichClient) UploadAsset(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {
		err := writeUploadForm(form, filename, r)
		if cerr := form.Close(); err == nil {
			err = cerr
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/assets", pr)
	if err != nil {
		return "", err
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("immich upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("immich upload failed: %d %s", resp.StatusCode, body)
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("immich upload: decode response: %w", err)
	}
	if out.ID == "" {
		return "", fmt.Errorf("immich upload: response missing asset id")
	}
	return out.ID, nil
}

func writeUploadForm(form *multipart.Writer, filename string, r io.Reader) error {
	now := time.Now().UTC().Format(time.RFC3339)
	fields := map[string]string{
		"deviceAssetId":  filename + "-" + strconv.FormatInt(time.Now().UnixNano(), 10),
		"deviceId":       "thisday-backend",
		"fileCreatedAt":  now,
		"fileModifiedAt": now,
	}
	for k, v := range fields {
		if err := form.WriteField(k, v); err != nil {
			return err
		}
	}
	part, err := form.CreateFormFile("assetData", filename)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, r)
	return err
}

// StreamAsset proxies the asset bytes straight to the response. variant is
// "thumbnail" or "full".
func (c *ImmichClient) StreamAsset(ctx context.Context, assetID, variant string, w http.ResponseWriter) error {
	endpoint := c.baseURL + "/api/assets/" + assetID + "/original"
	if variant == "thumbnail" {
		endpoint = c.baseURL + "/api/assets/" + assetID + "/thumbnail"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("immich fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("immich fetch failed: %d", resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		w.Header().Set("Content-Length", cl)
	}
	w.Header().Set("Cache-Control", "private, max-age=86400")

	_, err = io.Copy(w, resp.Body)
	return err
}
