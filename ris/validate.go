package ris

import "github.com/fwojciec/jurisref"

// RequiredFields are required on every record, whatever the site.
var RequiredFields = []string{jurisref.FieldCourt, jurisref.FieldDate}

// FieldMetadata is reported missing when there is no metadata at all.
const FieldMetadata = "metadata"

// Validate reports the required fields missing from m: court and date, then
// opts.ExtraRequired in order. Missing fields are data, never an error.
func (b *Builder) Validate(m *jurisref.CaseMetadata, opts jurisref.RecordOptions) jurisref.Validation {
	if m == nil {
		return jurisref.Validation{Valid: false, MissingFields: []string{FieldMetadata}}
	}

	missing := []string{}
	seen := make(map[string]bool)
	for _, field := range append(append([]string{}, RequiredFields...), opts.ExtraRequired...) {
		if seen[field] {
			continue
		}
		seen[field] = true
		if m.Value(field) == "" {
			missing = append(missing, field)
		}
	}

	return jurisref.Validation{Valid: len(missing) == 0, MissingFields: missing}
}
