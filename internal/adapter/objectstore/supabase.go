package objectstore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type signRequest struct {
	ExpiresIn int `json:"expiresIn"`
}

type signResponse struct {
	SignedURL string `json:"signedURL"`
}

type apiError struct {
	StatusCode string `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// SupabaseStore keeps objects in a private Supabase Storage bucket.
type SupabaseStore struct {
	http    *resty.Client
	baseURL string
	bucket  string
	logger  *slog.Logger
}

// NewSupabaseStore creates a store for bucket authenticated with serviceKey.
func NewSupabaseStore(baseURL, serviceKey, bucket string, logger *slog.Logger) (*SupabaseStore, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse storage url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("storage url must be absolute")
	}
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket must be provided")
	}
	base := strings.TrimRight(parsed.String(), "/")

	client := resty.New().
		SetBaseURL(base).
		SetTimeout(30 * time.Second)
	if serviceKey != "" {
		client.SetAuthToken(serviceKey).SetHeader("apikey", serviceKey)
	}

	return &SupabaseStore{http: client, baseURL: base, bucket: bucket, logger: logger}, nil
}

// Upload writes body under path and refuses to overwrite an existing object.
func (s *SupabaseStore) Upload(ctx context.Context, path, contentType string, body io.Reader) error {
	var failure apiError
	resp, err := s.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetHeader("x-upsert", "false").
		SetBody(body).
		SetError(&failure).
		Post(s.objectPath("object", path))
	if err != nil {
		return fmt.Errorf("upload object: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("upload object: %s", describe(resp, failure))
	}
	return nil
}

// SignedURL returns a download link for path that expires after ttl.
func (s *SupabaseStore) SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	seconds := int(ttl / time.Second)
	if seconds <= 0 {
		seconds = 1
	}

	var (
		result  signResponse
		failure apiError
	)
	resp, err := s.http.R().
		SetContext(ctx).
		SetBody(signRequest{ExpiresIn: seconds}).
		SetResult(&result).
		SetError(&failure).
		Post(s.objectPath("object/sign", path))
	if err != nil {
		return "", fmt.Errorf("sign object: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("sign object: %s", describe(resp, failure))
	}
	if result.SignedURL == "" {
		return "", fmt.Errorf("sign object: empty signed url")
	}
	if strings.HasPrefix(result.SignedURL, "http://") || strings.HasPrefix(result.SignedURL, "https://") {
		return result.SignedURL, nil
	}
	return s.baseURL + "/" + strings.TrimLeft(result.SignedURL, "/"), nil
}

func (s *SupabaseStore) objectPath(prefix, path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return "/" + prefix + "/" + url.PathEscape(s.bucket) + "/" + strings.Join(segments, "/")
}

func describe(resp *resty.Response, failure apiError) string {
	if failure.Message != "" {
		return fmt.Sprintf("%s (%s)", failure.Message, resp.Status())
	}
	return resp.Status()
}
