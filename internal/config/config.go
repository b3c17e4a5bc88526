// internal/config/config.go
package config

import (
	"gopkg.in/yaml.v3"
	"os"
)

type Config struct {
	DatabasePath string `yaml:"database_path"`
	CJKFontPath  string `yaml:"cjk_font_path"`
	Page         struct {
		WidthMM  float64 `yaml:"width_mm"`
		HeightMM float64 `yaml:"height_mm"`
		MarginMM float64 `yaml:"margin_mm"`
		GutterMM float64 `yaml:"gutter_mm"`
	} `yaml:"page"`
	Export struct {
		Preset        int  `yaml:"preset"`
		ShowCutGuides bool `yaml:"show_cut_guides"`
	} `yaml:"export"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "cardpress.db"
	}
	if cfg.CJKFontPath == "" {
		cfg.CJKFontPath = "assets/fonts/NotoSansJP-Regular.ttf"
	}
	// A4 portrait
	if cfg.Page.WidthMM == 0 {
		cfg.Page.WidthMM = 210
	}
	if cfg.Page.HeightMM == 0 {
		cfg.Page.HeightMM = 297
	}
	if cfg.Page.MarginMM == 0 {
		cfg.Page.MarginMM = 10
	}
	if cfg.Page.GutterMM == 0 {
		cfg.Page.GutterMM = 4
	}
	if cfg.Export.Preset == 0 {
		cfg.Export.Preset = 6
	}
}
