package jurisref

import "context"

// Adapter implements the extraction contract for one site against the page
// it was created for.
//
// Every extraction method takes a context and may suspend: a list page may
// need to fetch a linked document before it can return text. Callers always
// treat the methods the same way regardless of the concrete adapter.
//
// Absent data is not an error. A missing selector yields an empty field or
// an empty string; a failed network fetch yields an empty string. Errors are
// reserved for unrecoverable internal failures.
//
// Adapters are not safe for concurrent use.
type Adapter interface {
	// Site identifies the adapter.
	Site() Site

	// CheckCompatibility reports whether the page matches the site's URL
	// patterns and carries at least one required marker for its page shape.
	// It has no side effects.
	CheckCompatibility() bool

	// ExtractMetadata reads the page and returns the decision's metadata.
	// Returns nil only when the page is fundamentally unreadable.
	ExtractMetadata(ctx context.Context) (*CaseMetadata, error)

	// ExtractDecisionText returns the full decision text.
	ExtractDecisionText(ctx context.Context) (string, error)

	// ExtractAnalysis returns the analysis blocks joined by blank lines.
	ExtractAnalysis(ctx context.Context) (string, error)

	// ExtractOpinion returns the advocate general's opinion text, when the
	// site publishes one alongside the decision.
	ExtractOpinion(ctx context.Context) (string, error)

	// RecordOptions returns the site's citation policy.
	RecordOptions() RecordOptions
}

// AdapterRegistry selects the adapter matching a page.
type AdapterRegistry interface {
	// Match returns the site whose detection rule matches the URL, or
	// SiteUnknown.
	Match(url string) Site

	// Select returns an adapter bound to the page, or nil when no rule
	// matches. A nil result is a normal outcome, not an error.
	Select(page *Page) Adapter
}

// Extract drives one extraction pipeline through an adapter. Text fields are
// fetched in order; each may be empty. Metadata is nil when the page could not
// be read.
func Extract(ctx context.Context, a Adapter) (*ExtractionResult, error) {
	m, err := a.ExtractMetadata(ctx)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, Errorf(EINVALID, "page could not be read")
	}

	result := &ExtractionResult{Metadata: m}
	if result.DecisionText, err = a.ExtractDecisionText(ctx); err != nil {
		return nil, err
	}
	if result.AnalysisText, err = a.ExtractAnalysis(ctx); err != nil {
		return nil, err
	}
	if result.OpinionText, err = a.ExtractOpinion(ctx); err != nil {
		return nil, err
	}
	return result, nil
}
