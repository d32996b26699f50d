package config

import (
	"cmp"
	"slices"
)

func preset(sceneName string, frames int, seed int64, bodies int, params map[string]float64) *Config {
	cfg := DefaultConfig()
	cfg.Scene.Name = sceneName
	cfg.Scene.Frames = frames
	cfg.Scene.Seed = seed
	cfg.Scene.Bodies = bodies
	cfg.Scene.Params = params
	return cfg
}

var Presets = map[string]map[string]*Config{
	"bounce": {
		"rain":  preset("bounce", 600, 7, 10, map[string]float64{"gravity": 0.08}),
		"syrup": preset("bounce", 900, 3, 4, map[string]float64{"drag": 1.2}),
		"moon":  preset("bounce", 900, 11, 3, map[string]float64{"gravity": 0.01, "drag": 0.1}),
	},
	"spring": {
		"soft":  preset("spring", 600, 1, 0, map[string]float64{"k": 0.05, "damping": 0.99}),
		"stiff": preset("spring", 600, 1, 0, map[string]float64{"k": 0.4, "damping": 0.95}),
		"heavy": preset("spring", 900, 1, 0, map[string]float64{"gravity": 0.3}),
	},
	"pendulum": {
		"small":    preset("pendulum", 600, 1, 0, map[string]float64{"g": 0.1, "friction": 0.999}),
		"damped":   preset("pendulum", 600, 1, 0, map[string]float64{"friction": 0.97}),
		"frenetic": preset("pendulum", 600, 1, 0, map[string]float64{"g": 0.6, "friction": 1}),
	},
	"orbit": {
		"binary":  preset("orbit", 900, 5, 2, nil),
		"crowded": preset("orbit", 900, 9, 8, map[string]float64{"mass": 3}),
	},
	"wander": {
		"fireflies": preset("wander", 1200, 2, 12, map[string]float64{"strength": 0.03}),
		"gusty":     preset("wander", 600, 4, 5, map[string]float64{"strength": 0.15, "topspeed": 0.8}),
	},
	"shapes": {
		"slow": preset("shapes", 600, 1, 0, map[string]float64{"spin": 0.01, "wave": 0.03}),
		"fast": preset("shapes", 600, 1, 0, map[string]float64{"spin": 0.2, "wave": 0.2}),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(sceneName, name string) *Config {
	scenePresets, ok := Presets[sceneName]
	if !ok {
		return nil
	}
	cfg, ok := scenePresets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(sceneName string) []string {
	scenePresets, ok := Presets[sceneName]
	if !ok {
		return nil
	}
	return sortedKeys(scenePresets)
}

// sortedKeys returns the keys of m in ascending order (nil for an empty map).
func sortedKeys[M ~map[K]V, K cmp.Ordered, V any](m M) []K {
	var keys []K
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
