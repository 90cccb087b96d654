// Package profile holds the simulator run configuration: where the
// trace log goes, whether it echoes to the console, and the step
// limit. None of it changes execution semantics beyond the bound.
package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/archsim/lc2k/isa"
)

// Profile configures one simulator run.
type Profile struct {
	LogPath   string `yaml:"log_path"`   // trace log file
	Quiet     bool   `yaml:"quiet"`      // suppress the console echo
	StepLimit int    `yaml:"step_limit"` // execution bound
}

// Default returns the stock run profile.
func Default() *Profile {
	return &Profile{
		LogPath:   "result.txt",
		StepLimit: isa.STEP_LIMIT,
	}
}

// Load reads a YAML run profile. Missing fields keep their defaults.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile: %w", err)
	}

	prof := Default()
	if err := yaml.Unmarshal(data, prof); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	return prof, nil
}
