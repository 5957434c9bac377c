package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fwojciec/jurisref"
)

var (
	_ jurisref.Clipboard = (*writerClipboard)(nil)
	_ jurisref.Notifier  = (*writerNotifier)(nil)
)

// writerClipboard stands in for the system clipboard by writing to stdout,
// so output can be piped into a reference manager or a file.
type writerClipboard struct {
	w io.Writer
}

func (c *writerClipboard) Copy(ctx context.Context, text string) bool {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := io.WriteString(c.w, text)
	return err == nil
}

// writerNotifier prints notifications as one line each. Success messages
// are only shown when verbose.
type writerNotifier struct {
	w       io.Writer
	verbose bool
}

func (n *writerNotifier) Success(message string, d time.Duration) {
	if n.verbose {
		fmt.Fprintf(n.w, "%s\n", message)
	}
}

func (n *writerNotifier) Error(message string, d time.Duration) {
	fmt.Fprintf(n.w, "error: %s\n", message)
}

func (n *writerNotifier) Warning(message string, d time.Duration) {
	fmt.Fprintf(n.w, "warning: %s\n", message)
}

func (n *writerNotifier) Info(message string, d time.Duration) {
	fmt.Fprintf(n.w, "%s\n", message)
}
