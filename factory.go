package objpath

import (
	"net/url"
	"sync"
)

// SchemeFactory builds a Path for a URI whose scheme it is registered for.
// The raw URI is passed untouched; the factory owns all further parsing.
type SchemeFactory func(rawURI string) (Path, error)

var (
	schemeFactories = make(map[string]SchemeFactory)
	factoryMutex    sync.RWMutex
)

// RegisterScheme registers a backend factory for a URI scheme. Backend
// packages call this from init, so importing a driver package is enough to
// make its scheme resolvable.
func RegisterScheme(scheme string, factory SchemeFactory) {
	factoryMutex.Lock()
	defer factoryMutex.Unlock()
	schemeFactories[scheme] = factory
}

// Resolve parses the URI scheme and dispatches to the registered backend.
// An unknown or missing scheme is an AddressError.
func Resolve(rawURI string) (Path, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return nil, &AddressError{URI: rawURI, Reason: err.Error()}
	}
	if u.Scheme == "" {
		return nil, &AddressError{URI: rawURI, Reason: "missing scheme"}
	}

	factoryMutex.RLock()
	factory, exists := schemeFactories[u.Scheme]
	factoryMutex.RUnlock()

	if !exists {
		return nil, &AddressError{URI: rawURI, Reason: "scheme " + u.Scheme + " not registered"}
	}

	return factory(rawURI)
}
