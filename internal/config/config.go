package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI     string
	DBName       string
	JWTSecret    string
	RedisAddr    string
	CartCacheTTL time.Duration
	KafkaBrokers []string
	OrderTopic   string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:     getEnvOrDefault("MONGO_URI", ""),
		DBName:       getEnvOrDefault("DB_NAME", "storefront"),
		JWTSecret:    getEnvOrDefault("JWT_SECRET", ""),
		RedisAddr:    getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		CartCacheTTL: getDurationEnv("CART_CACHE_TTL", 15, time.Minute),
		KafkaBrokers: getListEnv("KAFKA_BROKERS"),
		OrderTopic:   getEnvOrDefault("ORDER_TOPIC", "order.confirmed"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func getListEnv(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
