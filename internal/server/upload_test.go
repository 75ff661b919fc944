package server

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestUploadName - Stored names
// ---------------------------------------------------------------------------

var storedNamePattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}-(.+)\.md$`)

func TestUploadName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		original string
		wantBase string
	}{
		{name: "plain", original: "notes.md", wantBase: "notes"},
		{name: "markdown extension", original: "notes.markdown", wantBase: "notes"},
		{name: "spaces", original: "my notes.md", wantBase: "my_notes"},
		{name: "unix path", original: "../../etc/passwd.md", wantBase: "passwd"},
		{name: "windows path", original: `C:\docs\report.md`, wantBase: "report"},
		{name: "unsafe characters", original: "a<b>&c.md", wantBase: "abc"},
		{name: "only unsafe characters", original: "???.md", wantBase: "document"},
		{name: "dots only", original: "...md", wantBase: "document"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := uploadName(tt.original)
			m := storedNamePattern.FindStringSubmatch(got)
			if m == nil {
				t.Fatalf("uploadName(%q) = %q, does not match stored name format", tt.original, got)
			}
			if m[1] != tt.wantBase {
				t.Errorf("uploadName(%q) base = %q, want %q", tt.original, m[1], tt.wantBase)
			}
			if !validStoredName(got) {
				t.Errorf("uploadName(%q) = %q is not a valid stored name", tt.original, got)
			}
		})
	}
}

func TestUploadName_Unique(t *testing.T) {
	t.Parallel()

	if uploadName("a.md") == uploadName("a.md") {
		t.Error("uploadName returned the same name twice")
	}
}

// ---------------------------------------------------------------------------
// TestDisplayName - Download names
// ---------------------------------------------------------------------------

func TestDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stored string
		want   string
	}{
		{name: "uuid prefix", stored: "0f8fad5b-d9cb-469f-a165-70867728950e-notes.pdf", want: "notes.pdf"},
		{name: "no prefix", stored: "notes.pdf", want: "notes.pdf"},
		{name: "not a uuid", stored: "zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz-notes.pdf", want: "zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz-notes.pdf"},
		{name: "bare uuid", stored: "0f8fad5b-d9cb-469f-a165-70867728950e", want: "0f8fad5b-d9cb-469f-a165-70867728950e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := displayName(tt.stored); got != tt.want {
				t.Errorf("displayName(%q) = %q, want %q", tt.stored, got, tt.want)
			}
		})
	}
}

func TestValidStoredName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "plain", in: "doc.pdf", want: true},
		{name: "empty", in: "", want: false},
		{name: "dot", in: ".", want: false},
		{name: "dotdot", in: "..", want: false},
		{name: "slash", in: "a/b.pdf", want: false},
		{name: "backslash", in: `a\b.pdf`, want: false},
		{name: "leading dots", in: "..secret.pdf", want: true},
		{name: "double dot inside", in: "notes..draft.pdf", want: true},
		{name: "traversal", in: "../secret.pdf", want: false},
		{name: "null byte", in: "a\x00.pdf", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := validStoredName(tt.in); got != tt.want {
				t.Errorf("validStoredName(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsTextContent - Content sniffing
// ---------------------------------------------------------------------------

func TestIsTextContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		head []byte
		want bool
	}{
		{name: "markdown", head: []byte("# Title\n\nSome *text*.\n"), want: true},
		{name: "html in markdown", head: []byte("<p>inline html</p>\n"), want: true},
		{name: "utf-8 accents", head: []byte("# Café\n\nÀ bientôt\n"), want: true},
		{name: "png", head: []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), want: false},
		{name: "pdf", head: []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n1 0 obj"), want: false},
		{name: "zip", head: []byte("PK\x03\x04\x14\x00\x00\x00\x08\x00"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := isTextContent(tt.head); got != tt.want {
				t.Errorf("isTextContent(%q) = %v, want %v", tt.head, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestPrepareUploadDir
// ---------------------------------------------------------------------------

func TestPrepareUploadDir(t *testing.T) {
	t.Parallel()

	t.Run("creates nested directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "a", "b")
		got, err := PrepareUploadDir(dir)
		if err != nil {
			t.Fatalf("PrepareUploadDir() unexpected error: %v", err)
		}
		if !filepath.IsAbs(got) {
			t.Errorf("PrepareUploadDir() = %q, want absolute path", got)
		}
		info, err := os.Stat(got)
		if err != nil || !info.IsDir() {
			t.Errorf("upload dir not created: %v", err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		if _, err := PrepareUploadDir(""); err == nil {
			t.Error("PrepareUploadDir(\"\") expected error")
		}
	})

	t.Run("path is a file", func(t *testing.T) {
		t.Parallel()

		file := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(file, nil, 0o600); err != nil {
			t.Fatal(err)
		}
		_, err := PrepareUploadDir(file)
		if err == nil || !strings.Contains(err.Error(), "creating upload directory") {
			t.Errorf("PrepareUploadDir(file) error = %v", err)
		}
	})
}
