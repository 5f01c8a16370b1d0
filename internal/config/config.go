package config

import (
	"os"
	"strings"
)

type (
	ServerConfig struct {
		Host        string
		Port        string
		CORSOrigins []string
	}

	StorageConfig struct {
		// Путь к JSON-файлу с объектами (хранилище по умолчанию).
		PropertiesFile string
		// Если задан DATABASE_URL — используется Postgres.
		DatabaseURL string
		// Если задан MONGO_URI — используется MongoDB.
		MongoURI string
		MongoDB  string
	}

	CurrencyConfig struct {
		// Ключ для currencyapi.com (последний провайдер в цепочке).
		APIKey string
		// Файл, в котором кэшируется курс между запусками.
		CacheFile string
	}

	Config struct {
		Server    ServerConfig
		Storage   StorageConfig
		Currency  CurrencyConfig
		JWTSecret string
		// Ключ виджета карт, отдается фронтенду как есть.
		MapsAPIKey string
	}
)

func Load() *Config {
	cfg := &Config{}

	cfg.Server.Host = getEnv("HOST", "0.0.0.0")
	cfg.Server.Port = getEnv("PORT", "5001")
	cfg.Server.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "*"))

	cfg.Storage.PropertiesFile = getEnv("PROPERTIES_FILE", "properties.json")
	cfg.Storage.DatabaseURL = getEnv("DATABASE_URL", "")
	cfg.Storage.MongoURI = getEnv("MONGO_URI", "")
	cfg.Storage.MongoDB = getEnv("MONGO_DB", "realestate")

	cfg.Currency.APIKey = getEnv("CURRENCY_API_KEY", "")
	cfg.Currency.CacheFile = getEnv("EXCHANGE_RATE_FILE", "exchange_rate.json")

	cfg.JWTSecret = getEnv("JWT_SECRET", "")
	cfg.MapsAPIKey = getEnv("YANDEX_MAPS_API_KEY", "")

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}

	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
