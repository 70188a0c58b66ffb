package config

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"time"

	"github.com/Veraticus/ecosort/internal/common"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Viper keys.
const (
	KeyBaseURL          = "api.base_url"
	KeyTimeout          = "api.timeout"
	KeyAnalyticsTimeout = "api.analytics_timeout"
	KeyTipsCacheTTL     = "api.tips_cache_ttl"
	KeyRetries          = "classify.retries"
	KeyConcurrency      = "classify.concurrency"
	KeyPreviewDir       = "preview.dir"
)

// APIConfig holds everything needed to talk to the classification service.
// The key tag names the viper key a field is read from.
type APIConfig struct {
	BaseURL          string        `key:"api.base_url" validate:"required"`
	PreviewDir       string        `key:"preview.dir"`
	Timeout          time.Duration `key:"api.timeout" validate:"gte=0"`
	AnalyticsTimeout time.Duration `key:"api.analytics_timeout" validate:"gte=0"`
	TipsCacheTTL     time.Duration `key:"api.tips_cache_ttl" validate:"gte=0"`
	Retries          int           `key:"classify.retries" validate:"gte=0"`
	Concurrency      int           `key:"classify.concurrency" validate:"gte=0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if key := field.Tag.Get("key"); key != "" {
			return key
		}
		return field.Name
	})
	return v
}

// DefaultAPIConfig returns the configuration used when nothing is set.
func DefaultAPIConfig() APIConfig {
	return APIConfig{
		BaseURL:          "http://localhost:5000",
		Timeout:          30 * time.Second,
		AnalyticsTimeout: 10 * time.Second,
		TipsCacheTTL:     time.Hour,
		Retries:          0,
		Concurrency:      4,
	}
}

// SetDefaults registers the defaults with v so that config files and
// environment variables only need to name what they change.
func SetDefaults(v *viper.Viper) {
	d := DefaultAPIConfig()
	v.SetDefault(KeyBaseURL, d.BaseURL)
	v.SetDefault(KeyTimeout, d.Timeout)
	v.SetDefault(KeyAnalyticsTimeout, d.AnalyticsTimeout)
	v.SetDefault(KeyTipsCacheTTL, d.TipsCacheTTL)
	v.SetDefault(KeyRetries, d.Retries)
	v.SetDefault(KeyConcurrency, d.Concurrency)
	v.SetDefault(KeyPreviewDir, d.PreviewDir)
}

// LoadAPIConfig reads the API configuration from v. Unset or zero values fall
// back to DefaultAPIConfig.
func LoadAPIConfig(v *viper.Viper) (*APIConfig, error) {
	cfg := DefaultAPIConfig()

	if s := v.GetString(KeyBaseURL); s != "" {
		cfg.BaseURL = s
	}
	if d := v.GetDuration(KeyTimeout); d > 0 {
		cfg.Timeout = d
	}
	if d := v.GetDuration(KeyAnalyticsTimeout); d > 0 {
		cfg.AnalyticsTimeout = d
	}
	if d := v.GetDuration(KeyTipsCacheTTL); d > 0 {
		cfg.TipsCacheTTL = d
	}
	if v.IsSet(KeyRetries) {
		cfg.Retries = v.GetInt(KeyRetries)
	}
	if n := v.GetInt(KeyConcurrency); n > 0 {
		cfg.Concurrency = n
	}
	cfg.PreviewDir = ExpandPath(v.GetString(KeyPreviewDir))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c APIConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
		}
		for _, fe := range fieldErrs {
			if fe.Tag() == "required" {
				return fmt.Errorf("%w: %s is required", common.ErrMissingConfig, fe.Field())
			}
		}
		fe := fieldErrs[0]
		return fmt.Errorf("%w: %s must be %s %s, got %v", common.ErrInvalidConfig, fe.Field(), fe.Tag(), fe.Param(), fe.Value())
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s must be an http or https URL, got %q", common.ErrInvalidConfig, KeyBaseURL, c.BaseURL)
	}
	return nil
}
