package physics

import (
	"fmt"
	"sort"

	"github.com/san-kum/attractors/internal/dynamo"
)

var catalog = map[string]func() dynamo.Dynamics{
	"halvorsen":            func() dynamo.Dynamics { return NewHalvorsen() },
	"lorenz":               func() dynamo.Dynamics { return NewLorenz() },
	"aizawa":               func() dynamo.Dynamics { return NewAizawa() },
	"fourwing":             func() dynamo.Dynamics { return NewFourWing() },
	"rabinovich_fabrikant": func() dynamo.Dynamics { return NewRabinovichFabrikant() },
	"thomas":               func() dynamo.Dynamics { return NewThomas() },
	"threescroll":          func() dynamo.Dynamics { return NewThreeScroll() },
	"rossler":              func() dynamo.Dynamics { return NewRossler() },
	"chen":                 func() dynamo.Dynamics { return NewChen() },
}

// Lookup returns a fresh variant with default coefficients.
func Lookup(name string) (dynamo.Dynamics, error) {
	fn, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownVariant, name)
	}
	return fn(), nil
}

// Names lists the catalog in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Configure applies coefficient overrides in sorted key order so errors are
// reported deterministically.
func Configure(dyn dynamo.Dynamics, params map[string]float64) error {
	if len(params) == 0 {
		return nil
	}
	cfg, ok := dyn.(dynamo.Configurable)
	if !ok {
		return fmt.Errorf("%T has no tunable parameters", dyn)
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := cfg.SetParam(k, params[k]); err != nil {
			return err
		}
	}
	return nil
}

// Params returns the coefficients of dyn, or nil when it has none.
func Params(dyn dynamo.Dynamics) map[string]float64 {
	if cfg, ok := dyn.(dynamo.Configurable); ok {
		return cfg.Params()
	}
	return nil
}
