package config

import (
	"log"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"

	"evroute/planner"
)

type Config struct {
	IsDebug *bool `yaml:"is_debug"`
	Listen  struct {
		BindIP   string `yaml:"bind_ip" env-default:"0.0.0.0"`
		Port     string `yaml:"port" env:"LISTEN_PORT" env-default:"5000"`
		TLS      bool   `yaml:"tls_enabled" env-default:"false"`
		CertFile string `yaml:"cert_file" env-default:""`
		KeyFile  string `yaml:"key_file" env-default:""`
	} `yaml:"listen"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" env-default:"false"`
		BindIP  string `yaml:"bind_ip" env-default:"0.0.0.0"`
		Port    string `yaml:"port" env-default:"9100"`
	} `yaml:"metrics"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env-default:"false"`
		Host     string `yaml:"host" env-default:"localhost"`
		Port     string `yaml:"port" env-default:"27017"`
		User     string `yaml:"user" env-default:""`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:""`
		Database string `yaml:"database" env-default:"evroute"`
	} `yaml:"mongo"`
	OCM struct {
		URL    string `yaml:"url" env-default:"https://api.openchargemap.io/v3/poi/"`
		ApiKey string `yaml:"api_key" env:"OCM_API_KEY" env-default:""`
	} `yaml:"ocm"`
	OSRM struct {
		URL string `yaml:"url" env-default:"https://router.project-osrm.org"`
	} `yaml:"osrm"`
	Geocoder struct {
		URL       string `yaml:"url" env-default:"https://nominatim.openstreetmap.org/search"`
		UserAgent string `yaml:"user_agent" env-default:"evroute/1.0"`
	} `yaml:"geocoder"`
	Assistant struct {
		URL    string `yaml:"url" env-default:""`
		ApiKey string `yaml:"api_key" env:"ASSISTANT_API_KEY" env-default:""`
		Model  string `yaml:"model" env-default:"gpt-4o-mini"`
	} `yaml:"assistant"`
	Telegram struct {
		Enabled bool   `yaml:"enabled" env-default:"false"`
		ApiKey  string `yaml:"api_key" env:"TELEGRAM_API_KEY" env-default:""`
	} `yaml:"telegram"`
	Cache struct {
		UpstreamTTL int `yaml:"upstream_ttl_seconds" env-default:"300"`
		ResponseTTL int `yaml:"response_ttl_seconds" env-default:"120"`
	} `yaml:"cache"`
	Search struct {
		SampleIntervalKm float64 `yaml:"sample_interval_km" env-default:"25"`
		RadiusKm         float64 `yaml:"radius_km" env-default:"10"`
		MaxPerSample     int     `yaml:"max_per_sample" env-default:"30"`
	} `yaml:"search"`
	Planner planner.Config `yaml:"planner"`
}

var instance *Config
var once sync.Once

func GetConfig() (*Config, error) {
	var err error
	once.Do(func() {
		log.Println("reading config")
		instance = &Config{}
		if err = cleanenv.ReadConfig("config.yml", instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			log.Println(desc)
			log.Println(err)
			instance = nil
		}
	})
	return instance, err
}
