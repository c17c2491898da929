package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel    string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFile     string `yaml:"log-file" env:"LOG_FILE" env-default:"tictactoe.log"`
	MetricsPort string `yaml:"metrics-port" env:"METRICS_PORT" env-default:""`
	Game        Game   `yaml:"game"`
	Cache       Cache  `yaml:"cache"`
	Redis       Redis  `yaml:"redis"`
}

type Game struct {
	Mode           string        `yaml:"mode" env:"GAME_MODE" env-default:"CPU"`
	HumanMark      string        `yaml:"human-mark" env:"GAME_HUMAN_MARK" env-default:"X"`
	AIDelay        time.Duration `yaml:"ai-delay" env:"GAME_AI_DELAY" env-default:"400ms"`
	ParallelSearch bool          `yaml:"parallel-search" env:"GAME_PARALLEL_SEARCH" env-default:"false"`
}

type Cache struct {
	Driver string        `yaml:"driver" env:"CACHE_DRIVER" env-default:"memory"`
	TTL    time.Duration `yaml:"ttl" env:"CACHE_TTL" env-default:"24h"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Load reads the YAML file at path with environment overrides. A missing file is not an error:
// the environment and defaults are used instead.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if _, statErr := os.Stat(path); statErr == nil {
		err = cleanenv.ReadConfig(path, config)
	} else {
		err = cleanenv.ReadEnv(config)
	}

	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Config) Validate() error {
	if _, err := entity.ParseMode(that.Game.Mode); err != nil {
		return fmt.Errorf("%w: game.mode: %w", ErrInvalidConfig, err)
	}

	if _, err := entity.ParseMark(that.Game.HumanMark); err != nil {
		return fmt.Errorf("%w: game.human-mark: %w", ErrInvalidConfig, err)
	}

	if that.Game.AIDelay < 0 {
		return fmt.Errorf("%w: game.ai-delay must not be negative", ErrInvalidConfig)
	}

	switch that.Cache.Driver {
	case CacheMemory, CacheRedis, CacheNone:
	default:
		return fmt.Errorf("%w: unknown cache driver %q", ErrInvalidConfig, that.Cache.Driver)
	}

	return nil
}

// ParsedMode returns the validated game mode.
func (that *Game) ParsedMode() entity.Mode {
	mode, _ := entity.ParseMode(that.Mode)
	return mode
}

// ParsedHumanMark returns the validated human mark.
func (that *Game) ParsedHumanMark() entity.Mark {
	mark, _ := entity.ParseMark(that.HumanMark)
	return mark
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
