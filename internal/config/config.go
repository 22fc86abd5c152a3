package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Postgres    Postgres
	HTTP        HTTP
	Telegram    Telegram
	WriteBehind WriteBehind
	Log         Log
}

type Postgres struct {
	// DSN is optional. Without it course data lives in memory only.
	DSN string `env:"PG_DSN"`
}

type HTTP struct {
	Addr            string        `env:"HTTP_ADDR" env-default:":8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type Telegram struct {
	// BotToken is optional. Without it the bot is not started.
	BotToken        string        `env:"TELEGRAM_BOT_TOKEN"`
	LongPollerDelay time.Duration `env:"TELEGRAM_LONG_POLLER_DELAY" env-default:"10s"`
	AdminID         int64         `env:"TELEGRAM_ADMIN_ID"`
}

type WriteBehind struct {
	Delay     time.Duration `env:"WRITE_BEHIND_DELAY" env-default:"2s"`
	OpTimeout time.Duration `env:"WRITE_BEHIND_OP_TIMEOUT" env-default:"10s"`
	QueueSize int           `env:"WRITE_BEHIND_QUEUE_SIZE" env-default:"64"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Pretty bool   `env:"LOG_PRETTY" env-default:"false"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("cleanenv.ReadEnv: %w", err)
	}

	return cfg, nil
}

func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != ""
}
