package config

import "sort"

func preset(variant string, dt, lo, hi float32, params map[string]float64) *Config {
	cfg := DefaultConfig()
	cfg.Variant = variant
	cfg.Dt = dt
	cfg.Min = lo
	cfg.Max = hi
	cfg.Params = params
	return cfg
}

var Presets = map[string]map[string]*Config{
	"rossler": {
		"classic": preset("rossler", 0.001, -1, 1, nil),
		"fast":    preset("rossler", 0.01, -1, 1, nil),
		"funnel":  preset("rossler", 0.005, -5, 5, map[string]float64{"a": 0.3, "c": 8.5}),
	},
	"lorenz": {
		"classic":   preset("lorenz", 0.005, -20, 20, nil),
		"butterfly": preset("lorenz", 0.002, -1, 1, nil),
		"periodic":  preset("lorenz", 0.005, -20, 20, map[string]float64{"rho": 99.96}),
	},
	"halvorsen": {
		"classic": preset("halvorsen", 0.005, -5, 5, nil),
		"wide":    preset("halvorsen", 0.002, -20, 20, nil),
	},
	"aizawa": {
		"classic": preset("aizawa", 0.01, -1, 1, nil),
	},
	"fourwing": {
		"classic": preset("fourwing", 0.05, -1, 1, nil),
	},
	"rabinovich_fabrikant": {
		"classic": preset("rabinovich_fabrikant", 0.005, -1, 1, nil),
		"tight":   preset("rabinovich_fabrikant", 0.002, -0.5, 0.5, map[string]float64{"alpha": 0.1}),
	},
	"thomas": {
		"classic": preset("thomas", 0.05, -5, 5, nil),
		"dense":   preset("thomas", 0.05, -5, 5, map[string]float64{"b": 0.18}),
	},
	"threescroll": {
		"classic": preset("threescroll", 0.0005, -1, 1, nil),
	},
	"chen": {
		"classic": preset("chen", 0.002, -10, 10, nil),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(variant, name string) *Config {
	variantPresets, ok := Presets[variant]
	if !ok {
		return nil
	}
	cfg, ok := variantPresets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(variant string) []string {
	variantPresets, ok := Presets[variant]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(variantPresets))
	for name := range variantPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
