package config

import (
	"strings"
	"time"

	"github.com/hance08/findash/internal/constants"
	"github.com/spf13/viper"
)

type Config struct {
	API        APIConfig        `mapstructure:"api"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Validation ValidationConfig `mapstructure:"validation"`
	Dashboard  DashboardConfig  `mapstructure:"dashboard"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Log        LogConfig        `mapstructure:"log"`
	ConfigPath string           `mapstructure:"-"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type AuthConfig struct {
	Mode     string   `mapstructure:"mode"`
	Token    string   `mapstructure:"token"`
	ClientID string   `mapstructure:"client_id"`
	Tenant   string   `mapstructure:"tenant"`
	Scopes   []string `mapstructure:"scopes"`

	// Endpoint overrides; empty means derive from the tenant authority.
	DeviceAuthURL string `mapstructure:"device_auth_url"`
	TokenURL      string `mapstructure:"token_url"`

	// Identity overrides, used when the token carries no profile claims.
	Name  string `mapstructure:"name"`
	Email string `mapstructure:"email"`
	ID    string `mapstructure:"id"`
}

type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type ValidationConfig struct {
	MinAmount            float64  `mapstructure:"min_amount"`
	MaxAmount            float64  `mapstructure:"max_amount"`
	MaxDescriptionLength int      `mapstructure:"max_description_length"`
	AllowedDomains       []string `mapstructure:"allowed_domains"`
}

type DashboardConfig struct {
	ChartHours  int    `mapstructure:"chart_hours"`
	RecentLimit int    `mapstructure:"recent_limit"`
	PageSize    int    `mapstructure:"page_size"`
	MaxPageSize int    `mapstructure:"max_page_size"`
	Timezone    string `mapstructure:"timezone"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

func NewDefault() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: constants.DefaultAPIBaseURL,
			Timeout: constants.DefaultAPITimeout,
		},
		Auth: AuthConfig{
			ClientID: constants.DefaultAuthClientID,
			Tenant:   constants.DefaultAuthTenant,
			Scopes:   []string{constants.DefaultAuthScope},
		},
		Cache: CacheConfig{TTL: constants.DefaultCacheTTL},
		Validation: ValidationConfig{
			MinAmount:            constants.DefaultMinAmount,
			MaxAmount:            constants.DefaultMaxAmount,
			MaxDescriptionLength: constants.DefaultMaxDescriptionLen,
			AllowedDomains:       append([]string(nil), constants.DefaultAllowedDomains...),
		},
		Dashboard: DashboardConfig{
			ChartHours:  constants.DefaultChartHours,
			RecentLimit: constants.DefaultRecentLimit,
			PageSize:    constants.DefaultPageSize,
			MaxPageSize: constants.MaxPageSize,
			Timezone:    constants.DefaultTimezone,
		},
		Database: DatabaseConfig{Path: ""},
		Log:      LogConfig{Level: constants.DefaultLogLevel},
	}
}

// RegisterDefaults mirrors NewDefault into viper so the generated config file
// lists every key and environment overrides resolve during Unmarshal.
func RegisterDefaults(v *viper.Viper) {
	d := NewDefault()

	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout.String())

	v.SetDefault("auth.mode", d.Auth.Mode)
	v.SetDefault("auth.token", d.Auth.Token)
	v.SetDefault("auth.client_id", d.Auth.ClientID)
	v.SetDefault("auth.tenant", d.Auth.Tenant)
	v.SetDefault("auth.scopes", d.Auth.Scopes)
	v.SetDefault("auth.device_auth_url", "")
	v.SetDefault("auth.token_url", "")
	v.SetDefault("auth.name", "")
	v.SetDefault("auth.email", "")
	v.SetDefault("auth.id", "")

	v.SetDefault("cache.ttl", d.Cache.TTL.String())

	v.SetDefault("validation.min_amount", d.Validation.MinAmount)
	v.SetDefault("validation.max_amount", d.Validation.MaxAmount)
	v.SetDefault("validation.max_description_length", d.Validation.MaxDescriptionLength)
	v.SetDefault("validation.allowed_domains", d.Validation.AllowedDomains)

	v.SetDefault("dashboard.chart_hours", d.Dashboard.ChartHours)
	v.SetDefault("dashboard.recent_limit", d.Dashboard.RecentLimit)
	v.SetDefault("dashboard.page_size", d.Dashboard.PageSize)
	v.SetDefault("dashboard.max_page_size", d.Dashboard.MaxPageSize)
	v.SetDefault("dashboard.timezone", d.Dashboard.Timezone)

	v.SetDefault("database.path", d.Database.Path)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.path", d.Log.Path)
}

// Location resolves the configured timezone, falling back to the local zone.
func (c DashboardConfig) Location() *time.Location {
	if strings.TrimSpace(c.Timezone) == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Authority returns the identity provider base URL for the configured tenant.
func (c AuthConfig) Authority() string {
	return constants.AuthorityBaseURL + c.Tenant
}

func (c AuthConfig) DeviceEndpoint() string {
	if c.DeviceAuthURL != "" {
		return c.DeviceAuthURL
	}
	return c.Authority() + "/oauth2/v2.0/devicecode"
}

func (c AuthConfig) TokenEndpoint() string {
	if c.TokenURL != "" {
		return c.TokenURL
	}
	return c.Authority() + "/oauth2/v2.0/token"
}
