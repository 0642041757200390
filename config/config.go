package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode     string `mapstructure:"mode"`
	Handlers struct {
		Pprof struct {
			Port string `mapstructure:"port"`
		} `mapstructure:"pprof"`
		Prometheus struct {
			Port string `mapstructure:"port"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Repositories struct {
		Postgres struct {
			Host     string `mapstructure:"host"`
			Password string `mapstructure:"password"`
			Port     string `mapstructure:"port"`
			Username string `mapstructure:"username"`
			DB       string `mapstructure:"db"`
			SSLMode  string `mapstructure:"sslmode"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	Places struct {
		APIKey          string        `mapstructure:"apiKey"`
		BaseURL         string        `mapstructure:"baseURL"`
		MaxResults      int           `mapstructure:"maxResults"`
		RequestTimeout  time.Duration `mapstructure:"requestTimeout"`
		PhotoMaxWidthPx int           `mapstructure:"photoMaxWidthPx"`
		DetailsCacheTTL time.Duration `mapstructure:"detailsCacheTTL"`
	} `mapstructure:"places"`
	Cors struct {
		Origin string `mapstructure:"origin"`
	} `mapstructure:"cors"`
	VenueStatus struct {
		PollInterval   time.Duration `mapstructure:"pollInterval"`
		MaxWaitMinutes int           `mapstructure:"maxWaitMinutes"`
	} `mapstructure:"venueStatus"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Secrets come from the environment, never from the YAML file.
	v.MustBindEnv("places.apiKey", "GOOGLE_PLACES_API_KEY")
	v.MustBindEnv("repositories.postgres.password", "POSTGRES_PASSWORD")
	v.AutomaticEnv()

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	// Unmarshal the config into the Config struct
	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	return config, nil
}
