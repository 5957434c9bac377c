// Package dispatch routes user actions to the adapter bound to the current
// page and hands the results to the clipboard, notifier and importer.
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/fwojciec/jurisref"
	"github.com/google/uuid"
)

// Recognized actions.
const (
	ActionCheckCompatibility = "checkCompatibility"
	ActionCopyDecision       = "copyDecision"
	ActionCopyAnalysis       = "copyAnalysis"
	ActionCopyRIS            = "copyRis"
	ActionImportComplete     = "importComplete"
)

// User-facing messages.
const (
	MessageUnrecognized     = "unrecognized action"
	MessageNoAdapter        = "no compatible decision on this page"
	MessageDecisionCopied   = "Decision copied"
	MessageAnalysisCopied   = "Analysis copied"
	MessageRecordCopied     = "RIS record copied"
	MessageCopyFailed       = "Copy failed"
	MessageNoDecision       = "Could not extract the decision"
	MessageNoAnalysis       = "Could not extract the analysis"
	MessageNoRecord         = "Could not generate the RIS record"
	MessageImportCopyFailed = "Import and copy both failed"
	MessageTooLarge         = "Text too large for the clipboard"
	MessageUnavailable      = "The court website did not respond, try again later"
	MessageNotFound         = "A linked document could not be found"
)

// Request is one action sent by the caller.
type Request struct {
	ID     string `json:"id,omitempty"`
	Action string `json:"action"`
}

// Compatibility answers a checkCompatibility request.
type Compatibility struct {
	Compatible bool   `json:"compatible"`
	SiteName   string `json:"siteName,omitempty"`
	URL        string `json:"url"`
}

// Response answers a Request. Compatibility is set only for
// checkCompatibility, which replaces the success/message pair on the wire.
type Response struct {
	ID            string
	Success       bool
	Message       string
	Compatibility *Compatibility
}

// MarshalJSON encodes the response in the shape its action expects.
func (r Response) MarshalJSON() ([]byte, error) {
	if r.Compatibility != nil {
		return json.Marshal(struct {
			ID string `json:"id,omitempty"`
			Compatibility
		}{r.ID, *r.Compatibility})
	}
	return json.Marshal(struct {
		ID      string `json:"id,omitempty"`
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{r.ID, r.Success, r.Message})
}

// Option configures a Handler.
type Option func(*Handler)

// WithImporter sets the reference-manager importer. Without one,
// importComplete falls back to the clipboard.
func WithImporter(i jurisref.Importer) Option {
	return func(h *Handler) {
		h.importer = i
	}
}

// WithLogger sets the logger for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithNoteLimit overrides the per-site note length cap.
func WithNoteLimit(n int) Option {
	return func(h *Handler) {
		h.noteLimit = n
	}
}

// WithClipboardLimit caps the size in bytes of text handed to the
// clipboard. Larger text is refused with MessageTooLarge.
func WithClipboardLimit(n int) Option {
	return func(h *Handler) {
		h.clipboardLimit = n
	}
}

// WithIDGenerator sets the function generating request IDs for requests
// that arrive without one.
func WithIDGenerator(fn func() string) Option {
	return func(h *Handler) {
		h.newID = fn
	}
}

// Handler drives one extraction pipeline per request against the adapter
// selected for the current page. Requests are serialized.
type Handler struct {
	registry  jurisref.AdapterRegistry
	builder   jurisref.RecordBuilder
	clipboard jurisref.Clipboard
	notifier  jurisref.Notifier
	importer  jurisref.Importer
	logger    *slog.Logger
	noteLimit int
	newID     func() string

	clipboardLimit int

	mu      sync.Mutex
	page    *jurisref.Page
	adapter jurisref.Adapter
}

// NewHandler creates a Handler with no current page.
func NewHandler(registry jurisref.AdapterRegistry, builder jurisref.RecordBuilder, clipboard jurisref.Clipboard, notifier jurisref.Notifier, opts ...Option) *Handler {
	h := &Handler{
		registry:  registry,
		builder:   builder,
		clipboard: clipboard,
		notifier:  notifier,
		logger:    slog.New(slog.DiscardHandler),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Navigate replaces the current page and selects its adapter. The previous
// adapter, and its document cache, is discarded.
func (h *Handler) Navigate(page *jurisref.Page) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.page = page
	h.adapter = h.registry.Select(page)
	if h.adapter == nil && page != nil {
		h.logger.Debug("no compatible adapter", "url", page.URL)
	}
}

// Watch calls Navigate for every page the observer reports until ctx is
// done or the observer closes its channel.
func (h *Handler) Watch(ctx context.Context, observer jurisref.NavigationObserver) {
	changes := observer.Changes(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case page, ok := <-changes:
			if !ok {
				return
			}
			h.Navigate(page)
		}
	}
}

// Handle runs the request's action. Internal failures, including panics,
// are logged and answered with a generic message.
func (h *Handler) Handle(ctx context.Context, req Request) (resp Response) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := req.ID
	if id == "" {
		id = h.newID()
	}
	logger := h.logger.With("request_id", id, "action", req.Action)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("request panicked", "panic", r)
			h.notifier.Error(jurisref.GenericErrorMessage, 0)
			resp = Response{Message: jurisref.GenericErrorMessage}
		}
		resp.ID = id
		logger.Info("request", "success", resp.Success || (resp.Compatibility != nil && resp.Compatibility.Compatible))
	}()

	switch req.Action {
	case ActionCheckCompatibility:
		return h.checkCompatibility()
	case ActionCopyDecision:
		return h.run(ctx, logger, MessageNoDecision, h.copyDecision)
	case ActionCopyAnalysis:
		return h.run(ctx, logger, MessageNoAnalysis, h.copyAnalysis)
	case ActionCopyRIS:
		return h.run(ctx, logger, MessageNoRecord, h.copyRIS)
	case ActionImportComplete:
		return h.run(ctx, logger, MessageNoRecord, h.importComplete)
	}
	return Response{Message: MessageUnrecognized}
}

func (h *Handler) checkCompatibility() Response {
	c := &Compatibility{}
	if h.page != nil {
		c.URL = h.page.URL
	}
	if h.adapter != nil && h.adapter.CheckCompatibility() {
		c.Compatible = true
		c.SiteName = h.adapter.Site().Name()
	}
	return Response{Success: c.Compatible, Compatibility: c}
}

// run invokes an action that needs an adapter. Errors are logged in full
// and answered with a curated message: failed is used when no message fits
// the error code.
func (h *Handler) run(ctx context.Context, logger *slog.Logger, failed string, action func(context.Context, jurisref.Adapter) (Response, error)) Response {
	if h.adapter == nil {
		return Response{Message: MessageNoAdapter}
	}
	resp, err := action(ctx, h.adapter)
	if err != nil {
		logger.Error("request failed", "code", jurisref.ErrorCode(err), "err", err)
		msg := userMessage(err, failed)
		h.notifier.Error(msg, 0)
		return Response{Message: msg}
	}
	return resp
}

func userMessage(err error, failed string) string {
	switch jurisref.ErrorCode(err) {
	case jurisref.EINTERNAL:
		return jurisref.GenericErrorMessage
	case jurisref.EUNAVAILABLE:
		return MessageUnavailable
	case jurisref.ENOTFOUND:
		return MessageNotFound
	}
	return failed
}

func (h *Handler) copyDecision(ctx context.Context, a jurisref.Adapter) (Response, error) {
	text, err := a.ExtractDecisionText(ctx)
	if err != nil {
		return Response{}, err
	}
	return h.copyText(ctx, text, MessageDecisionCopied, MessageNoDecision), nil
}

func (h *Handler) copyAnalysis(ctx context.Context, a jurisref.Adapter) (Response, error) {
	text, err := a.ExtractAnalysis(ctx)
	if err != nil {
		return Response{}, err
	}
	return h.copyText(ctx, text, MessageAnalysisCopied, MessageNoAnalysis), nil
}

func (h *Handler) copyRIS(ctx context.Context, a jurisref.Adapter) (Response, error) {
	m, err := a.ExtractMetadata(ctx)
	if err != nil {
		return Response{}, err
	}
	if m == nil {
		h.notifier.Error(MessageNoRecord, 0)
		return Response{Message: MessageNoRecord}, nil
	}

	opts := h.options(a)
	h.warnMissing(m, opts)
	record := h.builder.BuildBasic(m, opts)
	return h.copyText(ctx, record.String(), MessageRecordCopied, MessageNoRecord), nil
}

func (h *Handler) importComplete(ctx context.Context, a jurisref.Adapter) (Response, error) {
	result, err := jurisref.Extract(ctx, a)
	if jurisref.ErrorCode(err) == jurisref.EINVALID {
		h.notifier.Error(MessageNoRecord, 0)
		return Response{Message: MessageNoRecord}, nil
	} else if err != nil {
		return Response{}, err
	}

	opts := h.options(a)
	h.warnMissing(result.Metadata, opts)
	record := h.builder.BuildComplete(result.Metadata, result.Content(), opts)

	imported := jurisref.ImportResult{Action: jurisref.ImportCopy, Message: "No reference manager available, record copied instead"}
	if h.importer != nil {
		imported = h.importer.ImportWithConfirmation(ctx, record)
	}

	if imported.Action == jurisref.ImportCopy || (imported.Action == jurisref.ImportImported && !imported.Success) {
		text := record.String()
		if !h.fits(text) {
			h.notifier.Error(MessageTooLarge, 0)
			return Response{Message: MessageTooLarge}, nil
		}
		if !h.clipboard.Copy(ctx, text) {
			h.notifier.Error(MessageImportCopyFailed, 0)
			return Response{Message: MessageImportCopyFailed}, nil
		}
		h.notifier.Warning(imported.Message, 0)
		return Response{Success: true, Message: imported.Message}, nil
	}

	if imported.Success {
		h.notifier.Success(imported.Message, 0)
	} else {
		h.notifier.Info(imported.Message, 0)
	}
	return Response{Success: imported.Success, Message: imported.Message}, nil
}

func (h *Handler) copyText(ctx context.Context, text, copied, missing string) Response {
	if strings.TrimSpace(text) == "" {
		h.notifier.Error(missing, 0)
		return Response{Message: missing}
	}
	if !h.fits(text) {
		h.notifier.Error(MessageTooLarge, 0)
		return Response{Message: MessageTooLarge}
	}
	if !h.clipboard.Copy(ctx, text) {
		h.notifier.Error(MessageCopyFailed, 0)
		return Response{Message: MessageCopyFailed}
	}
	h.notifier.Success(copied, 0)
	return Response{Success: true, Message: copied}
}

func (h *Handler) fits(text string) bool {
	return h.clipboardLimit <= 0 || len(text) <= h.clipboardLimit
}

func (h *Handler) options(a jurisref.Adapter) jurisref.RecordOptions {
	opts := a.RecordOptions()
	if h.noteLimit > 0 {
		opts.NoteLimit = h.noteLimit
	}
	return opts
}

// warnMissing logs missing citation fields. An incomplete record is still
// produced so the user can finish it by hand.
func (h *Handler) warnMissing(m *jurisref.CaseMetadata, opts jurisref.RecordOptions) {
	v := h.builder.Validate(m, opts)
	if !v.Valid {
		h.logger.Warn("incomplete citation", "missing", fmt.Sprint(v.MissingFields))
	}
}
