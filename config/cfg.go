package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/skupulse/skupulse-manager/internal/analytics"
	httpapi "github.com/skupulse/skupulse-manager/internal/api/http"
	"github.com/skupulse/skupulse-manager/internal/auth/jwt"
	"github.com/skupulse/skupulse-manager/internal/metaads"
	"github.com/skupulse/skupulse-manager/internal/shiprocket"
	"github.com/skupulse/skupulse-manager/internal/shopify"
	"github.com/skupulse/skupulse-manager/log"
	"github.com/spf13/viper"
)

// Config represents the global configuration for the service.
type Config struct {
	Logger     log.Config        `mapstructure:"logger"`
	HTTP       httpapi.Config    `mapstructure:"http"`
	Auth       jwt.Config        `mapstructure:"auth"`
	Shopify    shopify.Config    `mapstructure:"shopify"`
	Shiprocket shiprocket.Config `mapstructure:"shiprocket"`
	MetaAds    metaads.Config    `mapstructure:"meta_ads"`
	Analytics  analytics.Config  `mapstructure:"analytics"`
}

// LoadConfig loads the configuration from a file and/or environment
// variables. Environment variables take precedence over config file values;
// nested keys use double underscore, e.g. SHOPIFY__STORE_DOMAIN.
func LoadConfig(cfgFile string) (*Config, error) {
	viper.SetConfigType("toml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))
	bindEnvVars()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %v", err)
			}
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("$HOME/config/skupulse")
		viper.AddConfigPath("/etc/skupulse")
		_ = viper.ReadInConfig()
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}

	return &config, nil
}

// bindEnvVars binds flat environment variable names to config keys.
func bindEnvVars() {
	// Logger
	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.add_source", "LOG_ADD_SOURCE")

	// HTTP
	viper.BindEnv("http.port", "HTTP_PORT")
	viper.BindEnv("http.address", "HTTP_ADDRESS")
	viper.BindEnv("http.allowed_origins", "HTTP_ALLOWED_ORIGINS")

	// Auth
	viper.BindEnv("auth.secret", "AUTH_SECRET")
	viper.BindEnv("auth.token_ttl", "AUTH_TOKEN_TTL")

	// Shopify
	viper.BindEnv("shopify.store_domain", "SHOPIFY_STORE_DOMAIN")
	viper.BindEnv("shopify.access_token", "SHOPIFY_ACCESS_TOKEN")
	viper.BindEnv("shopify.http_timeout", "SHOPIFY_HTTP_TIMEOUT")

	// Shiprocket
	viper.BindEnv("shiprocket.base_url", "SHIPROCKET_BASE_URL")
	viper.BindEnv("shiprocket.email", "SHIPROCKET_EMAIL")
	viper.BindEnv("shiprocket.password", "SHIPROCKET_PASSWORD")
	viper.BindEnv("shiprocket.http_timeout", "SHIPROCKET_HTTP_TIMEOUT")

	// Meta ads
	viper.BindEnv("meta_ads.ad_account_id", "META_ADS_AD_ACCOUNT_ID")
	viper.BindEnv("meta_ads.access_token", "META_ADS_ACCESS_TOKEN")
	viper.BindEnv("meta_ads.api_version", "META_ADS_API_VERSION")
	viper.BindEnv("meta_ads.http_timeout", "META_ADS_HTTP_TIMEOUT")

	// Analytics
	viper.BindEnv("analytics.disable_predictive", "ANALYTICS_DISABLE_PREDICTIVE")
	viper.BindEnv("analytics.disable_ad_spend", "ANALYTICS_DISABLE_AD_SPEND")
}
