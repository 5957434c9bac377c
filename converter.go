package jurisref

// Converter turns an HTML fragment into the text body of a citation note.
type Converter interface {
	// Convert transforms an HTML fragment into text.
	// Returns an empty string when the fragment carries no text.
	Convert(html string) (string, error)
}
