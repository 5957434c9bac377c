package jurisref

import (
	"context"
	"time"
)

// Clipboard writes text where the user can paste it.
type Clipboard interface {
	// Copy writes text and reports whether it succeeded.
	Copy(ctx context.Context, text string) bool
}

// Notifier presents short status messages to the user.
// A zero duration selects the presenter's default.
type Notifier interface {
	Success(message string, d time.Duration)
	Error(message string, d time.Duration)
	Warning(message string, d time.Duration)
	Info(message string, d time.Duration)
}

// ImportAction describes what happened to a record handed to an Importer.
type ImportAction string

// Import actions.
const (
	ImportImported  ImportAction = "imported"
	ImportCopy      ImportAction = "copy"
	ImportCancelled ImportAction = "cancelled"
)

// ImportResult reports the outcome of an import.
type ImportResult struct {
	Success bool         `json:"success"`
	Action  ImportAction `json:"action"`
	Message string       `json:"message"`
}

// Importer hands a record to a reference manager, asking the user first.
// When the reference manager is unavailable the result action is ImportCopy,
// asking the caller to fall back to the clipboard.
type Importer interface {
	ImportWithConfirmation(ctx context.Context, record Record) ImportResult
}
