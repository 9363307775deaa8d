package gltfscene

// Config holds defaults for reading and writing glTF scenes.
type Config struct {
	// WeightScale maps glTF weights onto preset weights.
	WeightScale float64 `mapstructure:"weight_scale" default:"100"`
	// IncludeChildren is the default for operations that can cover descendants.
	IncludeChildren bool `mapstructure:"include_children" default:"false"`
}

// Options returns the scene options for this configuration.
func (c Config) Options() Options {
	return Options{WeightScale: c.WeightScale}
}
