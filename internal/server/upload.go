package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/inkwell-labs/mdpdf"
	"github.com/inkwell-labs/mdpdf/internal/fileutil"
)

var (
	errNoFile      = errors.New("no file uploaded")
	errInvalidType = errors.New("not a Markdown file")
)

// PrepareUploadDir resolves dir to an absolute path and creates it.
func PrepareUploadDir(dir string) (string, error) {
	if dir == "" {
		return "", errors.New("empty upload directory")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving upload directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}
	return abs, nil
}

// uploadName returns a collision-free stored name for an uploaded file:
// <uuid>-<sanitized base>.md
func uploadName(original string) string {
	base := original
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return uuid.NewString() + "-" + safeName(base) + ".md"
}

// safeName keeps ASCII letters, digits, dot, dash and underscore.
func safeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r == '.':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	name := strings.Trim(b.String(), ".")
	if name == "" {
		return "document"
	}
	return name
}

// displayName strips the uuid prefix added by uploadName.
func displayName(stored string) string {
	const prefixLen = 36 + 1
	if len(stored) > prefixLen && stored[prefixLen-1] == '-' {
		if _, err := uuid.Parse(stored[:prefixLen-1]); err == nil {
			return stored[prefixLen:]
		}
	}
	return stored
}

// validStoredName reports whether name is a single path element inside the
// upload directory. Dots inside a name are fine; only separators and the
// "." and ".." entries can leave the directory.
func validStoredName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`+"\x00")
}

// isTextContent reports whether the sniffed type is textual.
func isTextContent(head []byte) bool {
	for mt := mimetype.Detect(head); mt != nil; mt = mt.Parent() {
		if mt.Is("text/plain") {
			return true
		}
	}
	return false
}

// saveUpload validates an uploaded Markdown file and stores it in dir under
// a fresh name. It returns the stored path.
func saveUpload(dir string, file multipart.File, header *multipart.FileHeader) (string, error) {
	if header == nil || header.Filename == "" {
		return "", errNoFile
	}
	if !fileutil.HasExtension(header.Filename, mdpdf.MarkdownExtensions...) {
		return "", errInvalidType
	}

	head := make([]byte, 3072)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	head = head[:n]
	if n > 0 && !isTextContent(head) {
		return "", errInvalidType
	}

	path := filepath.Join(dir, uploadName(header.Filename))
	// #nosec G304 -- path is built from the upload dir and a generated name
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", err
	}

	_, err = out.Write(head)
	if err == nil {
		_, err = io.Copy(out, file)
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}
