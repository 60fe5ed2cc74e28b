package config

import "sort"

// Presets name the file sets written by the trainer for each data split.
var Presets = map[string]*Config{
	"train": {
		Preset: "train",
		Inputs: Inputs{Energy: "energy_train.out", Force: "force_train.out", Stress: "stress_train.out"},
		Output: "prediction.png",
	},
	"test": {
		Preset: "test",
		Inputs: Inputs{Energy: "energy_test.out", Force: "force_test.out", Stress: "stress_test.out"},
		Output: "prediction_test.png",
	},
}

// GetPreset returns a full config for the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Preset = p.Preset
	cfg.Inputs = p.Inputs
	cfg.Output = p.Output
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
