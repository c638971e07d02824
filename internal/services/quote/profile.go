package quote

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile holds the fixed parts of every quote. It can be loaded from YAML:
//
//	provider:
//	  name: TechSolutions Inc.
//	  street: 45 Industry Street
//	  city: New York, NY 10001
//	customer:
//	  name: Sample Company Ltd.
//	valid_days: 30
type Profile struct {
	Provider  Party `yaml:"provider"`
	Customer  Party `yaml:"customer"`
	ValidDays int   `yaml:"valid_days"`
}

// DefaultProfile is used when no profile file is configured.
func DefaultProfile() Profile {
	return Profile{
		Provider: Party{
			Name:   "TechSolutions Inc.",
			Street: "45 Industry Street",
			City:   "New York, NY 10001",
		},
		Customer: Party{
			Name:   "Sample Company Ltd.",
			Street: "123 Main Street",
			City:   "San Francisco, CA 94105",
		},
		ValidDays: 30,
	}
}

// withDefaults fills zero-valued parties and validity from DefaultProfile.
func (p Profile) withDefaults() Profile {
	def := DefaultProfile()
	if p.Provider.IsZero() {
		p.Provider = def.Provider
	}
	if p.Customer.IsZero() {
		p.Customer = def.Customer
	}
	if p.ValidDays <= 0 {
		p.ValidDays = def.ValidDays
	}
	return p
}

// LoadProfile reads a YAML profile from path. An empty path returns
// DefaultProfile.
func LoadProfile(path string) (Profile, error) {
	if path == "" {
		return DefaultProfile(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read quote profile: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("failed to parse quote profile %s: %w", path, err)
	}
	return p.withDefaults(), nil
}
