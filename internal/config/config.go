package config

import "time"

// AppConfig holds application-level settings.
type AppConfig struct {
	Env      string `mapstructure:"env"` // development renders text logs, anything else JSON
	LogLevel string `mapstructure:"log_level"`
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ScheduleConfig controls the timer that triggers the blog job.
type ScheduleConfig struct {
	Cron     string `mapstructure:"cron"`     // 5-field cron expression, e.g. "0 9 * * 1"
	Timezone string `mapstructure:"timezone"` // IANA name; empty means local time
	Grace    string `mapstructure:"grace"`    // duration string; later triggers are past due
	Monitor  bool   `mapstructure:"monitor"`  // persist schedule status in redis
}

// TrendsConfig controls the Google Trends keyword source.
type TrendsConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	Language  string `mapstructure:"language"`
	TZOffset  *int   `mapstructure:"tz_offset"` // minutes, as Google Trends expects; 0 is UTC
	Geo       string `mapstructure:"geo"`
	Timeframe string `mapstructure:"timeframe"`
	Timeout   string `mapstructure:"timeout"`
	SeedFile  string `mapstructure:"seed_file"` // optional override of the embedded tables
}

// OpenAIConfig holds the language-model credentials. The three Azure values
// come from AZURE_OPENAI_DEPLOYMENT, AZURE_OPENAI_KEY and AZURE_OPENAI_ENDPOINT.
type OpenAIConfig struct {
	Provider   string `mapstructure:"provider"` // azure or openai
	Deployment string `mapstructure:"deployment"`
	APIKey     string `mapstructure:"api_key"`
	Endpoint   string `mapstructure:"endpoint"`
	APIVersion string `mapstructure:"api_version"`
	Timeout    string `mapstructure:"timeout"`
}

// EmailConfig controls delivery of the generated post.
type EmailConfig struct {
	Provider     string `mapstructure:"provider"` // sendgrid, resend or log
	From         string `mapstructure:"from"`
	To           string `mapstructure:"to"`
	SendGridKey  string `mapstructure:"sendgrid_api_key"`
	ResendAPIKey string `mapstructure:"resend_api_key"`
	Timeout      string `mapstructure:"timeout"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"` // empty disables the endpoint
}

// Config is the top-level configuration structure.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	Trends   TrendsConfig   `mapstructure:"trends"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Email    EmailConfig    `mapstructure:"email"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// EnvBindings maps config keys to the environment variables that feed them.
var EnvBindings = map[string]string{
	"openai.deployment":      "AZURE_OPENAI_DEPLOYMENT",
	"openai.api_key":         "AZURE_OPENAI_KEY",
	"openai.endpoint":        "AZURE_OPENAI_ENDPOINT",
	"email.sendgrid_api_key": "SENDGRID_API_KEY",
	"email.resend_api_key":   "RESEND_API_KEY",
	"redis.addr":             "REDIS_ADDR",
	"redis.password":         "REDIS_PASSWORD",
	"app.log_level":          "LOG_LEVEL",
	"app.env":                "APP_ENV",
}

// FillDefaults applies default values if not provided.
// Credentials are left alone: a missing value reaches the provider as-is.
func (c *Config) FillDefaults() {
	if c.App.Env == "" {
		c.App.Env = "production"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.Schedule.Cron == "" {
		c.Schedule.Cron = "0 9 * * 1"
	}
	if c.Schedule.Grace == "" {
		c.Schedule.Grace = "1m"
	}
	if c.Trends.BaseURL == "" {
		c.Trends.BaseURL = "https://trends.google.com"
	}
	if c.Trends.Language == "" {
		c.Trends.Language = "en-US"
	}
	if c.Trends.TZOffset == nil {
		tz := 360
		c.Trends.TZOffset = &tz
	}
	if c.Trends.Geo == "" {
		c.Trends.Geo = "US"
	}
	if c.Trends.Timeframe == "" {
		c.Trends.Timeframe = "now 7-d"
	}
	if c.Trends.Timeout == "" {
		c.Trends.Timeout = "30s"
	}
	if c.OpenAI.Provider == "" {
		c.OpenAI.Provider = "azure"
	}
	if c.OpenAI.APIVersion == "" {
		c.OpenAI.APIVersion = "2024-03-01-preview"
	}
	if c.OpenAI.Timeout == "" {
		c.OpenAI.Timeout = "300s"
	}
	if c.Email.Provider == "" {
		c.Email.Provider = "sendgrid"
	}
	if c.Email.From == "" {
		c.Email.From = "from@email.com"
	}
	if c.Email.To == "" {
		c.Email.To = "to@email.com"
	}
	if c.Email.Timeout == "" {
		c.Email.Timeout = "30s"
	}
}

// Location resolves the schedule time zone, defaulting to local time.
func (c ScheduleConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Duration parses a duration string, returning def when s is empty.
func Duration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}
