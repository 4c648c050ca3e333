package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel          string `yaml:"log-level" env-default:"info"`
	HTTPPort          string `yaml:"http-port" env-default:"9090"`
	SocketPort        string `yaml:"socket-port" env-default:"8080"`
	Redis             Redis  `yaml:"redis"`
	SQLiteStoragePath string `yaml:"sqlite-storage-path" env-default:"aitic.db"`
	Hints             Hints  `yaml:"hints"`
	AI                AI     `yaml:"ai"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

type Hints struct {
	DailyLimit int `yaml:"daily-limit" env-default:"3"`
}

type AI struct {
	Difficulty string  `yaml:"difficulty" env-default:"hard"`
	Alpha      float64 `yaml:"alpha" env-default:"0.5"`
	Gamma      float64 `yaml:"gamma" env-default:"0.8"`
	Epsilon    float64 `yaml:"epsilon" env-default:"0.2"`
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
