// Package config loads site configuration from file and environment.
package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Site      SiteConfig      `yaml:"site" mapstructure:"site"`
	MLS       MLSConfig       `yaml:"mls" mapstructure:"mls"`
	WordPress WordPressConfig `yaml:"wordpress" mapstructure:"wordpress"`
	CRM       CRMConfig       `yaml:"crm" mapstructure:"crm"`
	Scorer    ScorerConfig    `yaml:"scorer" mapstructure:"scorer"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// SiteConfig describes the public site.
type SiteConfig struct {
	URL  string `yaml:"url" mapstructure:"url"`
	Name string `yaml:"name" mapstructure:"name"`
}

// MLSConfig holds MLS Grid connection settings. An empty APIKey leaves the
// listings source unconfigured.
type MLSConfig struct {
	APIURL      string `yaml:"api_url" mapstructure:"api_url"`
	APIKey      string `yaml:"api_key" mapstructure:"api_key"`
	PageSize    int    `yaml:"page_size" mapstructure:"page_size"`
	State       string `yaml:"state" mapstructure:"state"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// Configured reports whether both the base URL and credential are present.
func (c MLSConfig) Configured() bool {
	return strings.TrimSpace(c.APIURL) != "" && strings.TrimSpace(c.APIKey) != ""
}

// WordPressConfig holds WPGraphQL settings. An empty APIURL leaves the content
// source unconfigured.
type WordPressConfig struct {
	APIURL      string `yaml:"api_url" mapstructure:"api_url"`
	PageSize    int    `yaml:"page_size" mapstructure:"page_size"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// Configured reports whether the GraphQL endpoint is set.
func (c WordPressConfig) Configured() bool {
	return strings.TrimSpace(c.APIURL) != ""
}

// CRMConfig holds the lead webhook settings.
type CRMConfig struct {
	WebhookURL  string `yaml:"webhook_url" mapstructure:"webhook_url"`
	FormSource  string `yaml:"form_source" mapstructure:"form_source"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// ScorerConfig holds the desirability weights and caps.
type ScorerConfig struct {
	PointsPerStall     int `yaml:"points_per_stall" mapstructure:"points_per_stall"`
	StallCap           int `yaml:"stall_cap" mapstructure:"stall_cap"`
	IndoorArenaPoints  int `yaml:"indoor_arena_points" mapstructure:"indoor_arena_points"`
	OutdoorArenaPoints int `yaml:"outdoor_arena_points" mapstructure:"outdoor_arena_points"`
	AmenityPoints      int `yaml:"amenity_points" mapstructure:"amenity_points"`
	PointsPerPasture   int `yaml:"points_per_pasture" mapstructure:"points_per_pasture"`
	PastureCap         int `yaml:"pasture_cap" mapstructure:"pasture_cap"`
	PointsPerAcre      int `yaml:"points_per_acre" mapstructure:"points_per_acre"`
	AcreageCap         int `yaml:"acreage_cap" mapstructure:"acreage_cap"`
	FencingBonus       int `yaml:"fencing_bonus" mapstructure:"fencing_bonus"`
	FencingMinTypes    int `yaml:"fencing_min_types" mapstructure:"fencing_min_types"`
	PointsPerStructure int `yaml:"points_per_structure" mapstructure:"points_per_structure"`
	FeaturedLimit      int `yaml:"featured_limit" mapstructure:"featured_limit"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	FormRatePerMin int      `yaml:"form_rate_per_min" mapstructure:"form_rate_per_min"`
	FormBurst      int      `yaml:"form_burst" mapstructure:"form_burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment. An empty path searches
// the working directory for an optional config.yaml; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Environment
	v.SetEnvPrefix("HORSEFARM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Every key is registered so AutomaticEnv can bind it.
	v.SetDefault("site.url", "https://carolinahorsefarmrealty.com")
	v.SetDefault("site.name", "Carolina Horse Farm Realty")
	v.SetDefault("mls.api_url", "https://api.mlsgrid.com/v2")
	v.SetDefault("mls.api_key", "")
	v.SetDefault("mls.page_size", 100)
	v.SetDefault("mls.state", "NC")
	v.SetDefault("mls.timeout_secs", 15)
	v.SetDefault("wordpress.api_url", "")
	v.SetDefault("wordpress.page_size", 100)
	v.SetDefault("wordpress.timeout_secs", 15)
	v.SetDefault("crm.webhook_url", "")
	v.SetDefault("crm.form_source", "Carolina Horse Farm Realty Website")
	v.SetDefault("crm.timeout_secs", 10)
	for key, val := range scorerDefaults() {
		v.SetDefault("scorer."+key, val)
	}
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.form_rate_per_min", 10)
	v.SetDefault("server.form_burst", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

func scorerDefaults() map[string]int {
	return map[string]int{
		"points_per_stall":     2,
		"stall_cap":            50,
		"indoor_arena_points":  25,
		"outdoor_arena_points": 20,
		"amenity_points":       5,
		"points_per_pasture":   3,
		"pasture_cap":          30,
		"points_per_acre":      1,
		"acreage_cap":          50,
		"fencing_bonus":        10,
		"fencing_min_types":    2,
		"points_per_structure": 3,
		"featured_limit":       6,
	}
}

// Validate checks the settings required by the given command mode.
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, "server.port must be > 0 and <= 65535")
		}
		if c.Server.FormRatePerMin <= 0 {
			errs = append(errs, "server.form_rate_per_min must be > 0")
		}
		if c.Server.FormBurst <= 0 {
			errs = append(errs, "server.form_burst must be > 0")
		}
		if strings.TrimSpace(c.CRM.WebhookURL) == "" {
			zap.L().Warn("config: crm.webhook_url is empty, form submissions will fail")
		}
	case "cli":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if strings.TrimSpace(c.Site.URL) == "" {
		errs = append(errs, "site.url is required")
	}
	if c.MLS.PageSize <= 0 || c.MLS.PageSize > 1000 {
		errs = append(errs, fmt.Sprintf("mls.page_size must be between 1 and 1000, got %d", c.MLS.PageSize))
	}
	if c.WordPress.PageSize <= 0 || c.WordPress.PageSize > 100 {
		errs = append(errs, fmt.Sprintf("wordpress.page_size must be between 1 and 100, got %d", c.WordPress.PageSize))
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
