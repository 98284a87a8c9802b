package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/pratapsingh123om/wqam-dashboard/internal/param"
)

// Threshold overrides one parameter's safe range. Nil fields keep the
// embedded default.
type Threshold struct {
	Min *float64 `mapstructure:"min" yaml:"min,omitempty"`
	Max *float64 `mapstructure:"max" yaml:"max,omitempty"`
}

// Global configuration structure.
type Global struct {
	ListenAddr  string `mapstructure:"listen_addr" yaml:"listen_addr"`
	HistorySize int    `mapstructure:"history_size" yaml:"history_size"`
	ModelPath   string `mapstructure:"model_path" yaml:"model_path"`
	// Thresholds are keyed by canonical parameter name (ph, turbidity, ...).
	Thresholds map[string]Threshold `mapstructure:"thresholds" yaml:"thresholds,omitempty"`
}

// Registry returns the parameter registry with config overrides applied.
// Unknown threshold keys are ignored so stale config entries stay harmless.
func (c *Global) Registry() param.Registry {
	reg := param.DefaultRegistry()
	if len(c.Thresholds) == 0 {
		return reg
	}
	byName := map[string]param.Key{}
	for _, k := range param.All() {
		byName[k.String()] = k
	}
	for name, t := range c.Thresholds {
		key, ok := byName[name]
		if !ok {
			continue
		}
		spec := reg[key]
		if t.Min != nil {
			spec.Min = t.Min
		}
		if t.Max != nil {
			spec.Max = t.Max
		}
		reg[key] = spec
	}
	return reg
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.wqam/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".wqam")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("WQAM")
	v.AutomaticEnv()

	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("history_size", 25)
	v.SetDefault("model_path", "")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".wqam")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
