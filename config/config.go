package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Files    FilesConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port            string
	GinMode         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int32
	MinConns    int32
	AutoMigrate bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// CacheConfig controls the Redis-backed parking lot detail cache.
// Redis is only dialed when Enabled is true.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// FilesConfig points at the directory holding uploaded images.
type FilesConfig struct {
	Dir string
}

type LogConfig struct {
	Level string
}

func LoadConfig() *Config {
	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to load .env file: %v", err)
	}

	return &Config{
		Server:   GetServerConfig(),
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		Cache:    GetCacheConfig(),
		Files:    GetFilesConfig(),
		Log:      LogConfig{Level: getEnv("LOG_LEVEL", "info")},
	}
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:        "localhost",
		Port:        "5433", // test DB runs on 5433
		User:        "postgres",
		Password:    "postgres",
		DBName:      "test_db",
		SSLMode:     "disable",
		MaxConns:    5,
		MinConns:    1,
		AutoMigrate: true,
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // test Redis runs on 6380
		Password: "",
		DB:       1,
	}

	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			GinMode:         "test",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			ShutdownTimeout: time.Second,
		},
		Database: *testConfig,
		Redis:    testRedisConfig,
		Cache:    CacheConfig{Enabled: true, TTL: time.Minute},
		Files:    FilesConfig{Dir: os.TempDir()},
		Log:      LogConfig{Level: "debug"},
	}
}

func GetServerConfig() ServerConfig {
	return ServerConfig{
		Port:            getEnv("SERVER_PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "release"),
		ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:        getEnv("DB_HOST", "localhost"),
		Port:        getEnv("DB_PORT", "5432"),
		User:        getEnv("DB_USER", "postgres"),
		Password:    getEnv("DB_PASSWORD", "postgres"),
		DBName:      getEnv("DB_NAME", "postgres"),
		SSLMode:     getEnv("DB_SSL_MODE", "disable"),
		MaxConns:    int32(getEnvInt("DB_MAX_CONNS", 25)),
		MinConns:    int32(getEnvInt("DB_MIN_CONNS", 5)),
		AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", false),
	}
}

func GetRedisConfig() RedisConfig {
	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}
}

func GetCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: getEnvBool("CACHE_ENABLED", false),
		TTL:     getEnvDuration("CACHE_TTL", 5*time.Minute),
	}
}

func GetFilesConfig() FilesConfig {
	return FilesConfig{
		Dir: getEnv("FILES_DIR", "./public/files"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(getEnv(key, strconv.Itoa(fallback)))
	if err != nil {
		panic(err)
	}
	return value
}

func getEnvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(fallback)))
	if err != nil {
		panic(err)
	}
	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, fallback.String()))
	if err != nil {
		panic(err)
	}
	return value
}
