package rules

// Config holds the save gate expression of every section.
type Config struct {
	// OptionsCanSave gates saves of the options section.
	OptionsCanSave string `mapstructure:"options_can_save" default:"true"`
	// AllotmentsCanSave gates saves of the allotments section.
	AllotmentsCanSave string `mapstructure:"allotments_can_save" default:"true"`
	// PricingCanSave gates saves of the internal pricing section.
	PricingCanSave string `mapstructure:"pricing_can_save" default:"true"`
	// ConfigurationCanSave gates saves of the configuration section.
	ConfigurationCanSave string `mapstructure:"configuration_can_save" default:"true"`
}

// CanSave returns the gate expression configured for section.
func (c Config) CanSave(section string) string {
	switch section {
	case "options":
		return c.OptionsCanSave
	case "allotments":
		return c.AllotmentsCanSave
	case "pricing":
		return c.PricingCanSave
	case "configuration":
		return c.ConfigurationCanSave
	default:
		return ""
	}
}
