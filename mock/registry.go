package mock

import "github.com/fwojciec/jurisref"

var _ jurisref.AdapterRegistry = (*AdapterRegistry)(nil)

// AdapterRegistry is a mock implementation of jurisref.AdapterRegistry.
type AdapterRegistry struct {
	MatchFn  func(url string) jurisref.Site
	SelectFn func(page *jurisref.Page) jurisref.Adapter
}

func (r *AdapterRegistry) Match(url string) jurisref.Site {
	return r.MatchFn(url)
}

func (r *AdapterRegistry) Select(page *jurisref.Page) jurisref.Adapter {
	return r.SelectFn(page)
}
