package nativemsg

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/jurisref"
	"github.com/fwojciec/jurisref/dispatch"
)

// Incoming message types.
const (
	TypeNavigate = "navigate"
	TypeAction   = "action"
)

// Outgoing message types.
const (
	TypeResponse  = "response"
	TypeClipboard = "clipboard"
	TypeToast     = "toast"
)

// Incoming is a message sent by the browser extension. Navigate messages
// carry the page the user is viewing; action messages carry a request.
type Incoming struct {
	Type   string `json:"type"`
	ID     string `json:"id,omitempty"`
	Action string `json:"action,omitempty"`
	URL    string `json:"url,omitempty"`
	HTML   string `json:"html,omitempty"`
}

// Outgoing is a message sent to the browser extension.
type Outgoing struct {
	Type     string             `json:"type"`
	Response *dispatch.Response `json:"response,omitempty"`
	Text     string             `json:"text,omitempty"`
	Level    string             `json:"level,omitempty"`
	Message  string             `json:"message,omitempty"`
	Duration int64              `json:"duration,omitempty"`
}

// Dispatcher is the request handler driven by the host.
type Dispatcher interface {
	Navigate(page *jurisref.Page)
	Handle(ctx context.Context, req dispatch.Request) dispatch.Response
}

var (
	_ jurisref.Clipboard = (*Host)(nil)
	_ jurisref.Notifier  = (*Host)(nil)
	_ Dispatcher         = (*dispatch.Handler)(nil)
)

// Host speaks native messaging on a reader/writer pair, usually stdin and
// stdout. It is also the clipboard and notifier of the handler it drives:
// both are frames asking the extension to act.
type Host struct {
	r      io.Reader
	logger *slog.Logger

	mu sync.Mutex
	w  io.Writer
}

// NewHost creates a Host reading requests from r and writing to w.
func NewHost(r io.Reader, w io.Writer, logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Host{r: r, w: w, logger: logger}
}

// Serve reads messages until the extension closes the stream or ctx is
// done. Messages are handled one at a time, in order.
func (h *Host) Serve(ctx context.Context, d Dispatcher) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var msg Incoming
		err := ReadFrame(h.r, &msg)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if jurisref.ErrorCode(err) == jurisref.EINVALID {
			h.logger.Warn("dropping message", "err", err)
			continue
		}
		if err != nil {
			return err
		}

		switch msg.Type {
		case TypeNavigate:
			d.Navigate(&jurisref.Page{URL: msg.URL, HTML: msg.HTML})
		case TypeAction:
			resp := d.Handle(ctx, dispatch.Request{ID: msg.ID, Action: msg.Action})
			if err := h.send(Outgoing{Type: TypeResponse, Response: &resp}); err != nil {
				return err
			}
		default:
			h.logger.Warn("unknown message type", "type", msg.Type)
		}
	}
}

// Copy asks the extension to place text on the clipboard.
func (h *Host) Copy(ctx context.Context, text string) bool {
	if err := h.send(Outgoing{Type: TypeClipboard, Text: text}); err != nil {
		h.logger.Error("clipboard frame", "err", err)
		return false
	}
	return true
}

// Success shows a success toast.
func (h *Host) Success(message string, d time.Duration) { h.toast("success", message, d) }

// Error shows an error toast.
func (h *Host) Error(message string, d time.Duration) { h.toast("error", message, d) }

// Warning shows a warning toast.
func (h *Host) Warning(message string, d time.Duration) { h.toast("warning", message, d) }

// Info shows an informational toast.
func (h *Host) Info(message string, d time.Duration) { h.toast("info", message, d) }

func (h *Host) toast(level, message string, d time.Duration) {
	out := Outgoing{Type: TypeToast, Level: level, Message: message, Duration: d.Milliseconds()}
	if err := h.send(out); err != nil {
		h.logger.Error("toast frame", "err", err)
	}
}

func (h *Host) send(out Outgoing) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return WriteFrame(h.w, out)
}
