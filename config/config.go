package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"

	"github.com/bookhive/library-service/internal/mailer"
	"github.com/bookhive/library-service/internal/server"
	"github.com/bookhive/library-service/pkg/kafka"
	"github.com/bookhive/library-service/pkg/keystore"
	"github.com/bookhive/library-service/pkg/logger"
	"github.com/bookhive/library-service/pkg/postgres"
)

type Auth struct {
	JWTKey string `envconfig:"JWT_KEY" required:"true" json:"-"`
}

type Config struct {
	Server   server.Config
	Database postgres.Config
	Kafka    kafka.Config
	Redis    keystore.Config
	Auth     Auth
	SMTP     mailer.Config
	Log      logger.Log `yaml:"log"`
}

var (
	once sync.Once
	cfg  Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
		printConfig(cfg)
	})

	return &cfg
}

func printConfig(cfg Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}

type Option func(*Config)

func WithLogLevel(level zapcore.Level) Option {
	return func(c *Config) {
		c.Log.LogLevel = level
	}
}

func WithWriteTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Server.WriteTimeout = timeout
	}
}
