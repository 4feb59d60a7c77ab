package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wikimetrics/editnet/internal/network"
)

// ProjectConfig holds project-level settings loaded from editnet.yml.
type ProjectConfig struct {
	NetworkType   string `yaml:"networkType,omitempty"`
	EditLimit     int    `yaml:"editLimit,omitempty"`
	EditorLimit   int    `yaml:"editorLimit,omitempty"`
	TimeLimitDays int    `yaml:"timeLimitDays,omitempty"`
	SectionFilter bool   `yaml:"sectionFilter,omitempty"`
	StartDate     string `yaml:"startDate,omitempty"`
	EndDate       string `yaml:"endDate,omitempty"`
	WindowDays    int    `yaml:"windowDays,omitempty"`
	DBPath        string `yaml:"dbPath,omitempty"`
	Verbose       bool   `yaml:"verbose,omitempty"`
}

// Load attempts to read editnet.yml or editnet.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"editnet.yml", "editnet.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}

// BuildOptions converts the config into builder options. The network type
// defaults to coedit when unset; validity is checked by the builder.
func (c *ProjectConfig) BuildOptions() network.Options {
	typ := network.NetworkType(c.NetworkType)
	if c.NetworkType == "" {
		typ = network.Coedit
	}
	return network.Options{
		Type:          typ,
		EditLimit:     c.EditLimit,
		EditorLimit:   c.EditorLimit,
		TimeLimit:     time.Duration(c.TimeLimitDays) * 24 * time.Hour,
		SectionFilter: c.SectionFilter,
	}
}

// dateLayout matches the startDate and endDate config fields.
const dateLayout = "2006-01-02"

// WindowRange parses the configured analysis range and window length.
func (c *ProjectConfig) WindowRange() (start, end time.Time, window time.Duration, err error) {
	if c.StartDate == "" || c.EndDate == "" {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("config: startDate and endDate are required for windowed stats")
	}
	start, err = time.Parse(dateLayout, c.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("config: parse startDate: %w", err)
	}
	end, err = time.Parse(dateLayout, c.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("config: parse endDate: %w", err)
	}
	days := c.WindowDays
	if days <= 0 {
		days = 30
	}
	return start, end, time.Duration(days) * 24 * time.Hour, nil
}
