package yamlutil_test

// The Marshal error branch is not covered: yaml.Marshal only fails on
// unmarshalable types (channels, functions), which never appear in
// production structs.

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-pdf2md/internal/yamlutil"
)

type sampleDoc struct {
	Name    string `yaml:"name"`
	Pages   int    `yaml:"pages"`
	Enabled bool   `yaml:"enabled"`
}

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "valid YAML",
			data: []byte("name: report\npages: 12\nenabled: true"),
			dest: &sampleDoc{},
			check: func(t *testing.T, v any) {
				doc := v.(*sampleDoc)
				if doc.Name != "report" {
					t.Errorf("Name = %q, want %q", doc.Name, "report")
				}
				if doc.Pages != 12 {
					t.Errorf("Pages = %d, want %d", doc.Pages, 12)
				}
				if !doc.Enabled {
					t.Error("Enabled = false, want true")
				}
			},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &sampleDoc{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "empty data",
			data:    []byte{},
			dest:    &sampleDoc{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("name: report"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:    "invalid YAML syntax",
			data:    []byte("name: [unclosed"),
			dest:    &sampleDoc{},
			wantErr: errors.New("yamlutil:"), // partial match
		},
		{
			name: "unicode content",
			data: []byte("name: 日本語テスト"),
			dest: &sampleDoc{},
			check: func(t *testing.T, v any) {
				doc := v.(*sampleDoc)
				if doc.Name != "日本語テスト" {
					t.Errorf("Name = %q, want %q", doc.Name, "日本語テスト")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Unmarshal(tt.data, tt.dest)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if errors.Is(err, tt.wantErr) {
					return
				}
				if !strings.Contains(err.Error(), tt.wantErr.Error()) {
					t.Fatalf("error = %q, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, tt.dest)
			}
		})
	}
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "known fields only",
			data: []byte("name: strict\npages: 10"),
			dest: &sampleDoc{},
			check: func(t *testing.T, v any) {
				doc := v.(*sampleDoc)
				if doc.Name != "strict" {
					t.Errorf("Name = %q, want %q", doc.Name, "strict")
				}
				if doc.Pages != 10 {
					t.Errorf("Pages = %d, want %d", doc.Pages, 10)
				}
			},
		},
		{
			name:    "unknown field causes error",
			data:    []byte("name: report\nunknown_field: value"),
			dest:    &sampleDoc{},
			wantErr: errors.New("yamlutil:"),
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &sampleDoc{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("name: report"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict(tt.data, tt.dest)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if errors.Is(err, tt.wantErr) {
					return
				}
				if !strings.Contains(err.Error(), tt.wantErr.Error()) {
					t.Fatalf("error = %q, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, tt.dest)
			}
		})
	}
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	t.Run("valid struct", func(t *testing.T) {
		t.Parallel()

		data, err := yamlutil.Marshal(&sampleDoc{Name: "out", Pages: 5, Enabled: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		s := string(data)
		for _, want := range []string{"name: out", "pages: 5", "enabled: true"} {
			if !strings.Contains(s, want) {
				t.Errorf("output missing %q, got: %s", want, s)
			}
		}
	})

	t.Run("nil value produces null", func(t *testing.T) {
		t.Parallel()

		data, err := yamlutil.Marshal(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s := strings.TrimSpace(string(data)); s != "null" {
			t.Errorf("output = %q, want %q", s, "null")
		}
	})
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	original := sampleDoc{Name: "roundtrip", Pages: 99, Enabled: true}

	data, err := yamlutil.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded sampleDoc
	if err := yamlutil.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if decoded != original {
		t.Errorf("decoded = %+v, want %+v", decoded, original)
	}
}

// TestInputSizeLimit mutates the global MaxInputSize, so it must not run
// in parallel with other tests.
func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })

	t.Run("input at limit succeeds", func(t *testing.T) {
		yamlutil.MaxInputSize = 100
		data := make([]byte, 100)
		copy(data, []byte("name: x"))
		var doc sampleDoc
		if err := yamlutil.Unmarshal(data, &doc); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("input exceeding limit fails", func(t *testing.T) {
		yamlutil.MaxInputSize = 100
		data := make([]byte, 101)
		copy(data, []byte("name: x"))
		var doc sampleDoc
		if err := yamlutil.Unmarshal(data, &doc); !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
		}
	})

	t.Run("error message includes sizes", func(t *testing.T) {
		yamlutil.MaxInputSize = 50
		data := make([]byte, 100)
		var doc sampleDoc
		err := yamlutil.Unmarshal(data, &doc)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "100 bytes") {
			t.Errorf("error should contain actual size, got: %s", err)
		}
		if !strings.Contains(err.Error(), "max 50") {
			t.Errorf("error should contain max size, got: %s", err)
		}
	})

	t.Run("UnmarshalStrict also enforces limit", func(t *testing.T) {
		yamlutil.MaxInputSize = 100
		data := make([]byte, 101)
		copy(data, []byte("name: x"))
		var doc sampleDoc
		if err := yamlutil.UnmarshalStrict(data, &doc); !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
		}
	})
}
