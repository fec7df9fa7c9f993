package config

import (
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Application struct {
		Name        string        `yaml:"name"`
		Environment string        `yaml:"environment"`
		Port        int           `yaml:"port"`
		Debug       bool          `yaml:"debug"`
		Timeout     time.Duration `yaml:"timeout"`
		BaseURL     string        `yaml:"baseURL"`
	} `yaml:"application"`
	CORS struct {
		AllowedOrigins   []string `yaml:"allowedOrigins"`
		AllowedMethods   []string `yaml:"allowedMethods"`
		AllowedHeaders   []string `yaml:"allowedHeaders"`
		ExposedHeaders   []string `yaml:"exposedHeaders"`
		MaxAge           int      `yaml:"maxAge"`
		AllowCredentials bool     `yaml:"allowCredentials"`
	} `yaml:"cors"`
	PostgreSQL struct {
		DSN             string        `yaml:"dsn"`
		MaxOpenConns    int           `yaml:"maxOpenConns"`
		MaxIdleConns    int           `yaml:"maxIdleConns"`
		ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
	} `yaml:"postgresql"`
	Redis struct {
		Address  string `yaml:"address"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Kafka struct {
		BootstrapServers string `yaml:"bootstrapServers"`
	} `yaml:"kafka"`
	JWT struct {
		PrivateKey string `yaml:"privateKey"`
		PublicKey  string `yaml:"publicKey"`
	} `yaml:"jwt"`
	GCP struct {
		ProjectID      string `yaml:"projectID"`
		ServiceAccount []byte `yaml:"serviceAccount"`
	} `yaml:"gcp"`
	Mailer struct {
		BaseURL string `yaml:"baseURL"`
		APIKey  string `yaml:"apiKey"`
		Sender  string `yaml:"sender"`
	} `yaml:"mailer"`
}

var (
	c    *Config
	once sync.Once
)

// Get loads the configuration once from the yaml file pointed to by
// CONFIG_PATH (./config.yaml when unset). Secrets are taken from the
// environment so they never live in the file.
func Get() *Config {
	once.Do(func() {
		path := os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "config.yaml"
		}

		c = &Config{}

		buff, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(buff, c); err != nil {
				panic(err)
			}
		}

		overrideFromEnv(c)
	})

	return c
}

func overrideFromEnv(c *Config) {
	if v := os.Getenv("POSTGRESQL_DSN"); v != "" {
		c.PostgreSQL.DSN = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("JWT_PRIVATE_KEY"); v != "" {
		c.JWT.PrivateKey = v
	}
	if v := os.Getenv("JWT_PUBLIC_KEY"); v != "" {
		c.JWT.PublicKey = v
	}
	if v := os.Getenv("MAILER_API_KEY"); v != "" {
		c.Mailer.APIKey = v
	}
	if v := os.Getenv("GCP_SERVICE_ACCOUNT"); v != "" {
		c.GCP.ServiceAccount = []byte(v)
	}
}
