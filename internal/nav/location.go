// Package nav keeps the current document identifier in sync with a
// navigable location, so the location is always a valid deep link to the
// displayed drawing (or carries no identifier for a new unsaved one).
package nav

import (
	"net/url"
	"sync"
)

// Param is the query parameter carrying the document identifier.
const Param = "doc"

// Binding tracks the identifier-bearing location.
type Binding interface {
	// Current returns the bound identifier, if any.
	Current() (string, bool)
	// Bind rewrites the location to carry id.
	Bind(id string)
	// Clear rewrites the location to carry no identifier.
	Clear()
	// Location returns the canonical deep link.
	Location() string
}

// QueryBinding implements Binding over a base URL and the doc query
// parameter. Rewrites are in-place updates of the tracked URL; there is
// no reload semantic to worry about.
type QueryBinding struct {
	mu  sync.Mutex
	url *url.URL
}

// NewQueryBinding parses base as the canonical location. The initial
// identifier, if present, is whatever the base carries.
func NewQueryBinding(base string) (*QueryBinding, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	return &QueryBinding{url: u}, nil
}

func (b *QueryBinding) Current() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.url.Query().Get(Param)
	return id, id != ""
}

func (b *QueryBinding) Bind(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	q := b.url.Query()
	q.Set(Param, id)
	b.url.RawQuery = q.Encode()
}

func (b *QueryBinding) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	q := b.url.Query()
	q.Del(Param)
	b.url.RawQuery = q.Encode()
}

func (b *QueryBinding) Location() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.url.String()
}
