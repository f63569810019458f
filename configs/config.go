package configs

import (
	"fmt"
	"os"
)

type Config struct {
	AppPort    string
	PublicURL  string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPass     string
	DBName     string
	RedisHost  string
	RedisPort  string
	KafkaURL   string
	JWTSecret  string
	SearchPath string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

func LoadConfig() *Config {
	return &Config{
		AppPort:    getEnv("APP_PORT", ":8080"),
		PublicURL:  getEnv("PUBLIC_URL", "http://localhost:8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "blog"),
		DBPass:     getEnv("DB_PASSWORD", "blogpass"),
		DBName:     getEnv("DB_NAME", "blog_db"),
		RedisHost:  getEnv("REDIS_HOST", "localhost"),
		RedisPort:  getEnv("REDIS_PORT", "6379"),
		KafkaURL:   getEnv("KAFKA_BOOTSTRAP_SERVERS", "localhost:9092"),
		JWTSecret:  getEnv("JWT_SECRET", ""),
		SearchPath: getEnv("SEARCH_INDEX_PATH", "data/posts.bleve"),

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:    getEnv("MINIO_BUCKET", "blog-media"),
		MinioUseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName,
	)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
