// Package config предоставялет структуры и функции для парсинга и загрузки конфига.
// Конфиг читается из YAML файла по пути CONFIG_PATH, секреты могут быть
// переопределены переменными окружения.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Политики обработки неудачного слота при генерации плана.
const (
	SlotFailureSkip  = "skip"
	SlotFailureAbort = "abort"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	GRPCAuthAddress         string `yaml:"grpc_auth_address" env:"GRPC_AUTH_ADDRESS"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	MealDB                  `yaml:"mealdb"`
	RabbitMQ                `yaml:"rabbitmq"`
	RateLimit               `yaml:"rate_limit"`
	Planner                 `yaml:"planner"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env-default:"localhost:6379"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// JWTToken структура для работы с jwt-токенами
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	AccessTTL    time.Duration `yaml:"access_ttl" env-default:"15m"`
	RefreshTTL   time.Duration `yaml:"refresh_ttl" env-default:"720h"`
}

// MealDB настройки клиента внешнего каталога рецептов
type MealDB struct {
	MealDBBaseURL string        `yaml:"base_url" env-default:"https://www.themealdb.com/api/json/v1/1"`
	MealDBTimeout time.Duration `yaml:"timeout" env-default:"5s"`
}

// RabbitMQ настройки публикации доменных событий. Пустой URL отключает публикацию.
type RabbitMQ struct {
	RabbitURL        string        `yaml:"url" env:"RABBITMQ_URL"`
	RabbitExchange   string        `yaml:"exchange" env-default:"meal_planner"`
	RabbitRetries    int           `yaml:"retries" env-default:"3"`
	RabbitRetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// RateLimit ограничение частоты запросов к маршрутам, ходящим во внешний каталог
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"5"`
	Burst int     `yaml:"burst" env-default:"10"`
}

// Planner настройки генерации планов
type Planner struct {
	OnSlotFailure string `yaml:"on_slot_failure" env-default:"skip"`
	MaxDays       int    `yaml:"max_days" env-default:"31"`
	Randomize     bool   `yaml:"randomize"`
}

// Load читает конфиг из файла path и переменных окружения.
func Load(path string) (*Config, error) {
	const op = "config.Load"
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad загружает конфиг по пути из CONFIG_PATH и завершает процесс при ошибке.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Validate проверяет значения, которые нельзя выразить значениями по умолчанию.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecretKey == "" {
		errs = append(errs, errors.New("jwttoken.jwt_secret_key is empty"))
	}
	if c.OnSlotFailure != SlotFailureSkip && c.OnSlotFailure != SlotFailureAbort {
		errs = append(errs, fmt.Errorf("planner.on_slot_failure must be %q or %q, got %q",
			SlotFailureSkip, SlotFailureAbort, c.OnSlotFailure))
	}
	if c.MaxDays < 1 {
		errs = append(errs, fmt.Errorf("planner.max_days must be positive, got %d", c.MaxDays))
	}
	if c.RPS <= 0 || c.Burst < 1 {
		errs = append(errs, errors.New("rate_limit.rps and rate_limit.burst must be positive"))
	}
	return errors.Join(errs...)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"GRPCAuthAddress: %s\n"+
			"MigrationsPath: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  Password: %s\n"+
			"  DB: %d\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"JWTToken:\n"+
			"  JWTSecretKey: %s\n"+
			"  AccessTTL: %s\n"+
			"  RefreshTTL: %s\n"+
			"MealDB:\n"+
			"  BaseURL: %s\n"+
			"  Timeout: %s\n"+
			"RabbitMQ:\n"+
			"  Enabled: %t\n"+
			"  Exchange: %s\n"+
			"Planner:\n"+
			"  OnSlotFailure: %s\n"+
			"  MaxDays: %d\n"+
			"  Randomize: %t\n",
		c.Env,
		c.GRPCAuthAddress,
		c.MigrationsPath,
		c.AddressRedis,
		mask(c.Password),
		c.DB,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		mask(c.JWTSecretKey),
		c.AccessTTL,
		c.RefreshTTL,
		c.MealDBBaseURL,
		c.MealDBTimeout,
		c.RabbitURL != "",
		c.RabbitExchange,
		c.OnSlotFailure,
		c.MaxDays,
		c.Randomize,
	)
}
