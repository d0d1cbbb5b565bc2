package mistral

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newOCRServer builds an httptest server implementing the three endpoints
// of the OCR exchange. Handlers can be overridden per test via the status
// and body maps keyed by endpoint path prefix.
func newOCRServer(t *testing.T, overrides map[string]int) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/v1/files/", func(w http.ResponseWriter, r *http.Request) {
		if code, ok := overrides["/v1/files/"]; ok {
			http.Error(w, `{"message":"signed URL unavailable"}`, code)
			return
		}
		if r.URL.Query().Get("expiry") != "1" {
			t.Errorf("signed URL expiry = %q, want %q", r.URL.Query().Get("expiry"), "1")
		}
		_ = json.NewEncoder(w).Encode(SignedURLResponse{URL: "https://signed.example/doc.pdf"})
	})

	mux.HandleFunc("/v1/files", func(w http.ResponseWriter, r *http.Request) {
		if code, ok := overrides["/v1/files"]; ok {
			http.Error(w, `{"message":"upload refused"}`, code)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parsing multipart form: %v", err)
		}
		if got := r.FormValue("purpose"); got != "ocr" {
			t.Errorf("upload purpose = %q, want %q", got, "ocr")
		}
		_, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("reading form file: %v", err)
		} else if header.Filename != "report" {
			t.Errorf("upload filename = %q, want %q", header.Filename, "report")
		}
		_ = json.NewEncoder(w).Encode(UploadResponse{ID: "file-123", Purpose: "ocr"})
	})

	mux.HandleFunc("/v1/ocr", func(w http.ResponseWriter, r *http.Request) {
		if code, ok := overrides["/v1/ocr"]; ok {
			http.Error(w, `{"message":"model overloaded"}`, code)
			return
		}
		var req ocrRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding OCR request: %v", err)
		}
		if req.Model != DefaultModel {
			t.Errorf("OCR model = %q, want %q", req.Model, DefaultModel)
		}
		if req.Document.Type != "document_url" {
			t.Errorf("document type = %q, want %q", req.Document.Type, "document_url")
		}
		if !req.IncludeImageBase64 {
			t.Error("include_image_base64 = false, want true")
		}
		_ = json.NewEncoder(w).Encode(OCRResponse{
			Model: DefaultModel,
			Pages: []Page{
				{Index: 0, Markdown: "# Heading\n\n![img-0.png]()", Images: []Image{{ID: "img-0.png", ImageBase64: "QUJD"}}},
				{Index: 1, Markdown: "Second page"},
			},
		})
	})

	return httptest.NewServer(mux)
}

func TestSubmit(t *testing.T) {
	t.Parallel()

	srv := newOCRServer(t, nil)
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := client.Submit(context.Background(), "report", []byte("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if len(resp.Pages) != 2 {
		t.Fatalf("Submit() returned %d pages, want 2", len(resp.Pages))
	}
	if resp.Pages[0].Images[0].ID != "img-0.png" {
		t.Errorf("first page image ID = %q, want %q", resp.Pages[0].Images[0].ID, "img-0.png")
	}
	if resp.Pages[1].Markdown != "Second page" {
		t.Errorf("second page markdown = %q, want %q", resp.Pages[1].Markdown, "Second page")
	}
}

func TestSubmitAuthorizationHeader(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(OCRResponse{})
	}))
	defer srv.Close()

	client := NewClient("secret-token", WithBaseURL(srv.URL))
	if _, err := client.SubmitURL(context.Background(), "https://example.com/doc.pdf"); err != nil {
		t.Fatalf("SubmitURL() error = %v", err)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("Authorization header = %q, want %q", gotAuth, "Bearer secret-token")
	}
}

func TestSubmitErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		overrides map[string]int
		wantErr   error
		wantMsg   string
	}{
		{
			name:      "rejected key on upload",
			overrides: map[string]int{"/v1/files": http.StatusUnauthorized},
			wantErr:   ErrAuthentication,
			wantMsg:   "upload refused",
		},
		{
			name:      "forbidden on processing",
			overrides: map[string]int{"/v1/ocr": http.StatusForbidden},
			wantErr:   ErrAuthentication,
			wantMsg:   "model overloaded",
		},
		{
			name:      "upload failure",
			overrides: map[string]int{"/v1/files": http.StatusInternalServerError},
			wantErr:   ErrTransfer,
			wantMsg:   "upload refused",
		},
		{
			name:      "signed URL failure",
			overrides: map[string]int{"/v1/files/": http.StatusBadGateway},
			wantErr:   ErrTransfer,
			wantMsg:   "signed URL unavailable",
		},
		{
			name:      "processing failure",
			overrides: map[string]int{"/v1/ocr": http.StatusUnprocessableEntity},
			wantErr:   ErrProcessing,
			wantMsg:   "model overloaded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := newOCRServer(t, tt.overrides)
			defer srv.Close()

			client := NewClient("test-key", WithBaseURL(srv.URL))
			_, err := client.Submit(context.Background(), "report", []byte("%PDF-1.4"))
			if err == nil {
				t.Fatal("Submit() error = nil, want error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Submit() error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Submit() error %q does not contain service message %q", err, tt.wantMsg)
			}
		})
	}
}

func TestUploadLimit(t *testing.T) {
	t.Parallel()

	client := NewClient("test-key", WithUploadLimit(4))
	_, err := client.Upload(context.Background(), "report", []byte("12345"))
	if !errors.Is(err, ErrDocumentTooLarge) {
		t.Errorf("Upload() error = %v, want %v", err, ErrDocumentTooLarge)
	}

	unlimited := NewClient("test-key", WithUploadLimit(0), WithBaseURL("http://127.0.0.1:0"))
	if _, err := unlimited.Upload(context.Background(), "report", []byte("12345")); errors.Is(err, ErrDocumentTooLarge) {
		t.Error("Upload() with zero limit rejected document by size")
	}
}

func TestProcessNonJSONError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.Process(context.Background(), "https://example.com/doc.pdf")
	if !errors.Is(err, ErrProcessing) {
		t.Fatalf("Process() error = %v, want %v", err, ErrProcessing)
	}
	if !strings.Contains(err.Error(), "bad gateway") {
		t.Errorf("Process() error %q does not carry the response body", err)
	}
}

func TestContextCancellation(t *testing.T) {
	t.Parallel()

	srv := newOCRServer(t, nil)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	if _, err := client.Submit(ctx, "report", []byte("%PDF-1.4")); err == nil {
		t.Fatal("Submit() with canceled context returned nil error")
	}
}
