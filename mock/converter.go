package mock

import "github.com/fwojciec/jurisref"

var _ jurisref.Converter = (*Converter)(nil)

// Converter is a mock implementation of jurisref.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
