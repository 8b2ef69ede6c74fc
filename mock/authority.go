package mock

import "github.com/fwojciec/serplens"

var _ serplens.AuthorityProvider = (*AuthorityProvider)(nil)

// AuthorityProvider is a mock implementation of serplens.AuthorityProvider.
type AuthorityProvider struct {
	LookupFn func(url string) (serplens.Authority, bool)
}

func (p *AuthorityProvider) Lookup(url string) (serplens.Authority, bool) {
	return p.LookupFn(url)
}
