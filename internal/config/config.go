package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string   `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis    Redis    `yaml:"redis"`
	Mongo    Mongo    `yaml:"mongo"`
	AI       AI       `yaml:"ai"`
	Checkers Checkers `yaml:"checkers"`
}

type Redis struct {
	Host       string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port       string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	SessionTTL time.Duration `yaml:"session-ttl" env-default:"24h"`
}

type Mongo struct {
	URI      string `yaml:"uri" env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	Database string `yaml:"database" env-default:"gamehub"`
}

// AI tunes the computer opponents. Seed 0 seeds from the clock.
type AI struct {
	ThinkDelayMin     time.Duration `yaml:"think-delay-min" env-default:"400ms"`
	ThinkDelayMax     time.Duration `yaml:"think-delay-max" env-default:"900ms"`
	Seed              int64         `yaml:"seed" env-default:"0"`
	SloppinessVsHuman float64       `yaml:"sloppiness-vs-human" env-default:"0.45"`
	SloppinessAIvsAI  float64       `yaml:"sloppiness-ai-vs-ai" env-default:"0.8"`
	BadGames          bool          `yaml:"bad-games" env-default:"true"`
}

type Checkers struct {
	HistoryLimit int `yaml:"history-limit" env-default:"200"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
