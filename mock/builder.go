package mock

import "github.com/fwojciec/jurisref"

var _ jurisref.RecordBuilder = (*RecordBuilder)(nil)

// RecordBuilder is a mock implementation of jurisref.RecordBuilder.
type RecordBuilder struct {
	BuildBasicFn    func(m *jurisref.CaseMetadata, opts jurisref.RecordOptions) jurisref.Record
	BuildCompleteFn func(m *jurisref.CaseMetadata, content jurisref.NoteContent, opts jurisref.RecordOptions) jurisref.Record
	ValidateFn      func(m *jurisref.CaseMetadata, opts jurisref.RecordOptions) jurisref.Validation
}

func (b *RecordBuilder) BuildBasic(m *jurisref.CaseMetadata, opts jurisref.RecordOptions) jurisref.Record {
	return b.BuildBasicFn(m, opts)
}

func (b *RecordBuilder) BuildComplete(m *jurisref.CaseMetadata, content jurisref.NoteContent, opts jurisref.RecordOptions) jurisref.Record {
	return b.BuildCompleteFn(m, content, opts)
}

func (b *RecordBuilder) Validate(m *jurisref.CaseMetadata, opts jurisref.RecordOptions) jurisref.Validation {
	return b.ValidateFn(m, opts)
}
