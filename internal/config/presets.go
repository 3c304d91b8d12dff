package config

// Presets are ready-made run configurations per problem.
var Presets = map[string]map[string]*Config{
	"sine": {
		"fold": {
			Problem: "sine", Algorithm: "euler-newton", MaxSteps: 60,
			StepSize: 0.1, NewtonTol: 1e-10, MaxNewtonSteps: 5,
			StepControl: StepControlConfig{
				GrowthFactor: 2.0, ShrinkFactor: 0.5,
				LowWatermark: 2, HighWatermark: 4,
				MinStepSize: 1e-10, MaxStepSize: 0.25,
			},
		},
		"sweep": {
			Problem: "sine", Algorithm: "natural", MaxSteps: 9,
			StepSize: 0.1, NewtonTol: 1e-10, MaxNewtonSteps: 5,
		},
	},
	"circle": {
		"loop": {
			Problem: "circle", Algorithm: "euler-newton", MaxSteps: 200,
			StepSize: 0.1, NewtonTol: 1e-10, MaxNewtonSteps: 5,
			StepControl: StepControlConfig{
				GrowthFactor: 2.0, ShrinkFactor: 0.5,
				LowWatermark: 2, HighWatermark: 4,
				MinStepSize: 1e-10, MaxStepSize: 0.1,
			},
		},
	},
	"bratu": {
		"fold": {
			Problem: "bratu", Algorithm: "euler-newton", MaxSteps: 100,
			StepSize: 0.1, NewtonTol: 1e-10, MaxNewtonSteps: 6, GridNodes: 51,
			StepControl: StepControlConfig{
				GrowthFactor: 2.0, ShrinkFactor: 0.5,
				LowWatermark: 2, HighWatermark: 5,
				MinStepSize: 1e-10, MaxStepSize: 0.5,
			},
		},
		"upward": {
			Problem: "bratu", Algorithm: "natural", MaxSteps: 30,
			StepSize: 0.1, NewtonTol: 1e-10, MaxNewtonSteps: 6, GridNodes: 51,
		},
	},
}

// GetPreset returns the named preset for a problem, or nil.
func GetPreset(problem, name string) *Config {
	byName, ok := Presets[problem]
	if !ok {
		return nil
	}
	return byName[name]
}

// ListPresets returns the preset names for a problem.
func ListPresets(problem string) []string {
	byName, ok := Presets[problem]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	return names
}
