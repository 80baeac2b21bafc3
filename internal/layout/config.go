package layout

import "fmt"

// Config holds the spacing constants of the layout, in model units.
type Config struct {
	XSep                float64 `yaml:"x_sep" toml:"x_sep" json:"x_sep"`
	YSep                float64 `yaml:"y_sep" toml:"y_sep" json:"y_sep"`
	InterologCentreDist float64 `yaml:"interolog_centre_dist" toml:"interolog_centre_dist" json:"interolog_centre_dist"`
	QueryCentreDist     float64 `yaml:"query_centre_dist" toml:"query_centre_dist" json:"query_centre_dist"`
	DomainYSep          float64 `yaml:"domain_y_sep" toml:"domain_y_sep" json:"domain_y_sep"`
	MatchedXDist        float64 `yaml:"matched_x_dist" toml:"matched_x_dist" json:"matched_x_dist"`
	DomainTargetXDist   float64 `yaml:"domain_target_x_dist" toml:"domain_target_x_dist" json:"domain_target_x_dist"`
	DomainTargetYDist   float64 `yaml:"domain_target_y_dist" toml:"domain_target_y_dist" json:"domain_target_y_dist"`
	TargetXSep          float64 `yaml:"target_x_sep" toml:"target_x_sep" json:"target_x_sep"`
	Margin              float64 `yaml:"margin" toml:"margin" json:"margin"`
	TerminusOffset      float64 `yaml:"terminus_offset" toml:"terminus_offset" json:"terminus_offset"`
}

// DefaultConfig returns the standard spacing.
func DefaultConfig() Config {
	return Config{
		XSep:                30,
		YSep:                30,
		InterologCentreDist: 25,
		QueryCentreDist:     150,
		DomainYSep:          60,
		MatchedXDist:        50,
		DomainTargetXDist:   50,
		DomainTargetYDist:   15,
		TargetXSep:          27,
		Margin:              10,
		TerminusOffset:      25,
	}
}

// Fields maps each spacing's config key to the field holding it.
func (c *Config) Fields() map[string]*float64 {
	return map[string]*float64{
		"x_sep":                 &c.XSep,
		"y_sep":                 &c.YSep,
		"interolog_centre_dist": &c.InterologCentreDist,
		"query_centre_dist":     &c.QueryCentreDist,
		"domain_y_sep":          &c.DomainYSep,
		"matched_x_dist":        &c.MatchedXDist,
		"domain_target_x_dist":  &c.DomainTargetXDist,
		"domain_target_y_dist":  &c.DomainTargetYDist,
		"target_x_sep":          &c.TargetXSep,
		"margin":                &c.Margin,
		"terminus_offset":       &c.TerminusOffset,
	}
}

// Validate checks that every spacing is usable.
func (c Config) Validate() error {
	type field struct {
		name string
		v    float64
	}
	positive := []field{
		{"x_sep", c.XSep},
		{"y_sep", c.YSep},
		{"domain_y_sep", c.DomainYSep},
		{"target_x_sep", c.TargetXSep},
	}
	for _, f := range positive {
		if f.v <= 0 {
			return fmt.Errorf("layout %s must be positive, got %g", f.name, f.v)
		}
	}
	nonNegative := []field{
		{"interolog_centre_dist", c.InterologCentreDist},
		{"query_centre_dist", c.QueryCentreDist},
		{"matched_x_dist", c.MatchedXDist},
		{"domain_target_x_dist", c.DomainTargetXDist},
		{"domain_target_y_dist", c.DomainTargetYDist},
		{"margin", c.Margin},
		{"terminus_offset", c.TerminusOffset},
	}
	for _, f := range nonNegative {
		if f.v < 0 {
			return fmt.Errorf("layout %s must not be negative, got %g", f.name, f.v)
		}
	}
	return nil
}
