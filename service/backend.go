package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/AnTengye/tenantdesk/config"
	"github.com/AnTengye/tenantdesk/model"
)

// UploadPath is the backend endpoint receiving files
const UploadPath = "/api/upload"

// BackendClient talks to the property-management API
type BackendClient struct {
	baseURL    string
	httpClient *http.Client
}

// PingResponse is the body of the backend root endpoint
type PingResponse struct {
	Message string `json:"message"`
}

// UploadResponse is the body of a successful upload. Preview is nil when the
// backend did not return one.
type UploadResponse struct {
	Preview *string `json:"preview,omitempty"`
}

// APIError is a non-2xx answer from the backend
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return model.MessageUploadFailed
}

type errorBody struct {
	Detail string `json:"detail"`
}

func NewBackendClient(cfg *config.BackendConfig) *BackendClient {
	return &BackendClient{
		baseURL: cfg.URL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
	}
}

// Ping fetches the backend root. Any non-2xx status or undecodable body is an error.
func (s *BackendClient) Ping(ctx context.Context) (*PingResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var result PingResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &result, nil
}

// Upload posts file as multipart form data with fields "file" and "title".
// A non-2xx answer is returned as *APIError.
func (s *BackendClient) Upload(ctx context.Context, file *model.SelectedFile) (*UploadResponse, error) {
	body, contentType, err := encodeUpload(file)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+UploadPath, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure errorBody
		// an undecodable error body still yields the generic message
		_ = json.Unmarshal(data, &failure)
		return nil, &APIError{StatusCode: resp.StatusCode, Detail: failure.Detail}
	}

	var result UploadResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &result, nil
}

func encodeUpload(file *model.SelectedFile) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", file.Name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(file.Content); err != nil {
		return nil, "", fmt.Errorf("failed to write form file: %w", err)
	}
	if err := w.WriteField("title", file.Name); err != nil {
		return nil, "", fmt.Errorf("failed to write title: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close form: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}
