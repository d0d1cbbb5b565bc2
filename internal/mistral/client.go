// Package mistral implements the OCR service boundary: file upload, signed
// URL retrieval, and OCR processing against the Mistral document API.
package mistral

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Sentinel errors classifying remote failures.
var (
	ErrAuthentication   = errors.New("OCR service rejected the API key")
	ErrTransfer         = errors.New("document transfer failed")
	ErrProcessing       = errors.New("OCR processing failed")
	ErrDocumentTooLarge = errors.New("document exceeds upload size limit")
)

// API defaults.
const (
	DefaultBaseURL = "https://api.mistral.ai"
	DefaultModel   = "mistral-ocr-latest"

	// DefaultUploadLimit matches the service's documented maximum.
	DefaultUploadLimit = 50 << 20

	// signedURLExpiry is the retrieval-link lifetime in hours, the
	// shortest the API offers.
	signedURLExpiry = 1

	// defaultTimeout bounds a single request; OCR of large documents is
	// slow, so this is generous.
	defaultTimeout = 5 * time.Minute

	// maxErrorBody caps how much of a failure response is read for the
	// error message.
	maxErrorBody = 8 << 10
)

// Client calls the Mistral OCR HTTP API. The zero value is not usable;
// construct with NewClient.
type Client struct {
	apiKey      string
	model       string
	baseURL     string
	uploadLimit int
	httpClient  *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API base URL (no trailing slash). Used by tests
// to point the client at a local server.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithModel selects the processing model.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithUploadLimit changes the maximum accepted document size in bytes.
// Zero disables the check.
func WithUploadLimit(n int) ClientOption {
	return func(c *Client) {
		c.uploadLimit = n
	}
}

// NewClient creates a Client for the given bearer token.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:      apiKey,
		model:       DefaultModel,
		baseURL:     DefaultBaseURL,
		uploadLimit: DefaultUploadLimit,
		httpClient:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the processing model the client requests.
func (c *Client) Model() string {
	return c.model
}

// Upload stores the document bytes on the service under purpose "ocr" and
// returns the stored file's metadata. The name should be the file stem
// without extension.
func (c *Client) Upload(ctx context.Context, name string, data []byte) (*UploadResponse, error) {
	if c.uploadLimit > 0 && len(data) > c.uploadLimit {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrDocumentTooLarge, len(data), c.uploadLimit)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("purpose", "ocr"); err != nil {
		return nil, fmt.Errorf("%w: building upload form: %v", ErrTransfer, err)
	}
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return nil, fmt.Errorf("%w: building upload form: %v", ErrTransfer, err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("%w: building upload form: %v", ErrTransfer, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("%w: building upload form: %v", ErrTransfer, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/files", &body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransfer, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out UploadResponse
	if err := c.do(req, &out, ErrTransfer); err != nil {
		return nil, fmt.Errorf("uploading document: %w", err)
	}
	return &out, nil
}

// SignedURL obtains a short-lived retrieval link for an uploaded file.
func (c *Client) SignedURL(ctx context.Context, fileID string) (*SignedURLResponse, error) {
	endpoint := fmt.Sprintf("%s/v1/files/%s/url?expiry=%d", c.baseURL, url.PathEscape(fileID), signedURLExpiry)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransfer, err)
	}

	var out SignedURLResponse
	if err := c.do(req, &out, ErrTransfer); err != nil {
		return nil, fmt.Errorf("fetching signed URL: %w", err)
	}
	return &out, nil
}

// Process requests OCR of the document behind documentURL, asking for
// per-page images base64-encoded.
func (c *Client) Process(ctx context.Context, documentURL string) (*OCRResponse, error) {
	payload, err := json.Marshal(ocrRequest{
		Model:              c.model,
		Document:           ocrDocument{Type: "document_url", DocumentURL: documentURL},
		IncludeImageBase64: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encoding request: %v", ErrProcessing, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/ocr", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessing, err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out OCRResponse
	if err := c.do(req, &out, ErrProcessing); err != nil {
		return nil, fmt.Errorf("processing document: %w", err)
	}
	return &out, nil
}

// Submit runs the full exchange: upload, signed URL, then OCR processing.
// It is a single synchronous round trip from the caller's perspective; no
// step is retried.
func (c *Client) Submit(ctx context.Context, name string, data []byte) (*OCRResponse, error) {
	uploaded, err := c.Upload(ctx, name, data)
	if err != nil {
		return nil, err
	}

	signed, err := c.SignedURL(ctx, uploaded.ID)
	if err != nil {
		return nil, err
	}

	return c.Process(ctx, signed.URL)
}

// SubmitURL requests OCR of a document already reachable by URL, skipping
// upload and signed-URL retrieval.
func (c *Client) SubmitURL(ctx context.Context, documentURL string) (*OCRResponse, error) {
	return c.Process(ctx, documentURL)
}

// do executes the request and decodes the JSON response into out.
// Credential rejections map to ErrAuthentication regardless of endpoint;
// other failures map to kind. The service's message is preserved.
func (c *Client) do(req *http.Request, out any, kind error) error {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", kind, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrAuthentication, apiMessage(resp))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: %s", kind, apiMessage(resp))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: parsing response: %v", kind, err)
	}
	return nil
}

// apiMessage extracts the service's error message from a failure response,
// falling back to the HTTP status.
func apiMessage(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(bytes.TrimSpace(body)) == 0 {
		return resp.Status
	}

	var e apiError
	if json.Unmarshal(body, &e) == nil && e.Message != "" {
		return e.Message
	}
	return resp.Status + ": " + string(bytes.TrimSpace(body))
}
