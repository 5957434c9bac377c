package mock

import (
	"context"

	"github.com/fwojciec/jurisref"
)

var _ jurisref.Adapter = (*Adapter)(nil)

// Adapter is a mock implementation of jurisref.Adapter.
type Adapter struct {
	SiteFn                func() jurisref.Site
	CheckCompatibilityFn  func() bool
	ExtractMetadataFn     func(ctx context.Context) (*jurisref.CaseMetadata, error)
	ExtractDecisionTextFn func(ctx context.Context) (string, error)
	ExtractAnalysisFn     func(ctx context.Context) (string, error)
	ExtractOpinionFn      func(ctx context.Context) (string, error)
	RecordOptionsFn       func() jurisref.RecordOptions
}

func (a *Adapter) Site() jurisref.Site {
	return a.SiteFn()
}

func (a *Adapter) CheckCompatibility() bool {
	return a.CheckCompatibilityFn()
}

func (a *Adapter) ExtractMetadata(ctx context.Context) (*jurisref.CaseMetadata, error) {
	return a.ExtractMetadataFn(ctx)
}

func (a *Adapter) ExtractDecisionText(ctx context.Context) (string, error) {
	return a.ExtractDecisionTextFn(ctx)
}

func (a *Adapter) ExtractAnalysis(ctx context.Context) (string, error) {
	return a.ExtractAnalysisFn(ctx)
}

func (a *Adapter) ExtractOpinion(ctx context.Context) (string, error) {
	return a.ExtractOpinionFn(ctx)
}

func (a *Adapter) RecordOptions() jurisref.RecordOptions {
	return a.RecordOptionsFn()
}
