// Package fs imports citation records into a directory watched by a
// reference manager.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fwojciec/jurisref"
	"github.com/fwojciec/jurisref/normalize"
)

// Ensure Importer implements jurisref.Importer at compile time.
var _ jurisref.Importer = (*Importer)(nil)

// Extension is appended to every record file name.
const Extension = ".ris"

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// RecordPath derives a file name from the record's publisher, year and
// number. Example: PB "CJUE", PY "2023", A2 "aff. C-278/22" → 2023-cjue-aff-c-278-22.ris
func RecordPath(record jurisref.Record) string {
	var parts []string
	for _, tag := range []jurisref.Tag{jurisref.TagYear, jurisref.TagPublisher, jurisref.TagNumber} {
		v, _ := record.Value(tag)
		slug := strings.Trim(slugRe.ReplaceAllString(normalize.Fold(v), "-"), "-")
		if slug != "" {
			parts = append(parts, slug)
		}
	}
	if len(parts) == 0 {
		return "record" + Extension
	}
	return strings.Join(parts, "-") + Extension
}

// ConfirmFunc asks the user whether the record should be imported.
type ConfirmFunc func(ctx context.Context, record jurisref.Record) bool

// Option configures an Importer.
type Option func(*Importer)

// WithConfirm sets the confirmation prompt. Without one every import is
// accepted.
func WithConfirm(fn ConfirmFunc) Option {
	return func(i *Importer) {
		i.confirm = fn
	}
}

// Importer writes records as .ris files into a directory.
// A missing directory is created; an unwritable one makes the import fall
// back to the clipboard.
type Importer struct {
	dir     string
	confirm ConfirmFunc
}

// NewImporter creates an Importer writing to dir.
func NewImporter(dir string, opts ...Option) *Importer {
	i := &Importer{dir: dir}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// ImportWithConfirmation asks for confirmation and writes the record.
func (i *Importer) ImportWithConfirmation(ctx context.Context, record jurisref.Record) jurisref.ImportResult {
	if i.dir == "" {
		return jurisref.ImportResult{Action: jurisref.ImportCopy, Message: "no import directory configured"}
	}
	if i.confirm != nil && !i.confirm(ctx, record) {
		return jurisref.ImportResult{Action: jurisref.ImportCancelled, Message: "import cancelled"}
	}
	if err := ctx.Err(); err != nil {
		return jurisref.ImportResult{Action: jurisref.ImportCancelled, Message: "import cancelled"}
	}

	path, err := i.write(record)
	if err != nil {
		return jurisref.ImportResult{Action: jurisref.ImportCopy, Message: "import directory unavailable"}
	}
	return jurisref.ImportResult{
		Success: true,
		Action:  jurisref.ImportImported,
		Message: fmt.Sprintf("imported %s", filepath.Base(path)),
	}
}

// write saves the record to a temporary file and renames it into place so
// a watching reference manager never sees a partial record.
func (i *Importer) write(record jurisref.Record) (string, error) {
	if err := os.MkdirAll(i.dir, 0755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(i.dir, ".record-*.tmp")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(record.String()); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	path := filepath.Join(i.dir, RecordPath(record))
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}
