package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

// DepotConfig is the fixed coordinate mobilization distances are measured
// from.
type DepotConfig struct {
	Lng float64
	Lat float64
}

type GeoConfig struct {
	ServiceAreaPath string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	SalesInbox string
}

type NotifyConfig struct {
	WebhookURL string
	SMTP       SMTPConfig
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	Depot       DepotConfig
	Geo         GeoConfig
	Notify      NotifyConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		Depot: DepotConfig{
			Lng: v.GetFloat64("DEPOT_LNG"),
			Lat: v.GetFloat64("DEPOT_LAT"),
		},
		Geo: GeoConfig{
			ServiceAreaPath: v.GetString("SERVICE_AREA_PATH"),
		},
		Notify: NotifyConfig{
			WebhookURL: v.GetString("WEBHOOK_URL"),
			SMTP: SMTPConfig{
				Host:       v.GetString("SMTP_HOST"),
				Port:       v.GetInt("SMTP_PORT"),
				Username:   v.GetString("SMTP_USERNAME"),
				Password:   v.GetString("SMTP_PASSWORD"),
				From:       v.GetString("SMTP_FROM"),
				SalesInbox: v.GetString("SALES_INBOX"),
			},
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8080
	}
	if cfg.Depot.Lng == 0 && cfg.Depot.Lat == 0 {
		// Nashville operations yard.
		cfg.Depot.Lng = -86.7816
		cfg.Depot.Lat = 36.1627
	}
	if cfg.Geo.ServiceAreaPath == "" {
		cfg.Geo.ServiceAreaPath = "config/service_area.geojson"
	}
	if cfg.Notify.SMTP.Port == 0 {
		cfg.Notify.SMTP.Port = 587
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Depot.Lng < -180 || cfg.Depot.Lng > 180 {
		return fmt.Errorf("DEPOT_LNG out of range: %f", cfg.Depot.Lng)
	}
	if cfg.Depot.Lat < -90 || cfg.Depot.Lat > 90 {
		return fmt.Errorf("DEPOT_LAT out of range: %f", cfg.Depot.Lat)
	}
	if cfg.Notify.SMTP.Host != "" && cfg.Notify.SMTP.From == "" {
		return fmt.Errorf("SMTP_FROM is required when SMTP_HOST is set")
	}
	return nil
}
