// Package config loads process-wide configuration for the storefront.
//
// Values are resolved in four layers, later layers winning: built-in
// defaults, config/app.json, a .env file in the working directory, then
// real environment variables. Keys are case-insensitive and normalised
// to UPPER_SNAKE.
package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

const (
	defaultDatabaseDriver = "postgres"
	defaultRedisAddr      = "localhost:6379"
	defaultAppPort        = "8080"
	defaultAppEnv         = "local"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu        sync.RWMutex
	values    = defaultValues()
	overrides = map[string]string{}
)

// Load reads config/app.json and .env once. Missing files are not an
// error; malformed files are.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"DB_DRIVER":      defaultDatabaseDriver,
		"DATABASE_DSN":   "",
		"ADMIN_PASSWORD": "",
		"APP_PORT":       defaultAppPort,
		"APP_ENV":        defaultAppEnv,
		"REDIS_ADDR":     defaultRedisAddr,
		"REDIS_PASSWORD": "",
		"GRPC_PORT":      "",
		"LOG_MONGO_URI":  "",
	}
}

// DatabaseDriver returns the configured GORM driver name.
// Unknown values fall back to postgres.
func DatabaseDriver() string {
	_ = Load()

	driver := strings.ToLower(get("DB_DRIVER", defaultDatabaseDriver))
	switch driver {
	case "postgres", "mysql", "sqlite", "sqlserver":
		return driver
	default:
		return defaultDatabaseDriver
	}
}

// DatabaseDSN returns the backend connection string. There is no default:
// the store is hosted, and running without it configured is a startup
// error for anything that touches the catalog.
func DatabaseDSN() string {
	_ = Load()
	return get("DATABASE_DSN", "")
}

// AdminPassword returns the shared admin secret. Empty means unset, and
// the credential gate fails closed.
func AdminPassword() string {
	_ = Load()
	return get("ADMIN_PASSWORD", "")
}

func AppPort() string {
	_ = Load()
	return get("APP_PORT", defaultAppPort)
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

func RedisAddr() string {
	_ = Load()
	return get("REDIS_ADDR", defaultRedisAddr)
}

func RedisPassword() string {
	_ = Load()
	return get("REDIS_PASSWORD", "")
}

// GRPCPort returns the gRPC health listener port, or "" when disabled.
func GRPCPort() string {
	_ = Load()
	return get("GRPC_PORT", "")
}

// LogMongoURI returns the MongoDB connection string for the async log
// sink, or "" when the sink is disabled.
func LogMongoURI() string {
	_ = Load()
	return get("LOG_MONGO_URI", "")
}

// ── Storage ──────────────────────────────────────────────────────────────────

func StorageDefault() string {
	_ = Load()
	return get("STORAGE_DISK", "local")
}

func StorageLocalRoot() string {
	_ = Load()
	return get("STORAGE_LOCAL_ROOT", "storage")
}

func StorageURL() string {
	_ = Load()
	return get("STORAGE_URL", "http://localhost:8080/storage")
}

func StorageS3Bucket() string   { _ = Load(); return get("S3_BUCKET", "") }
func StorageS3Region() string   { _ = Load(); return get("S3_REGION", "us-east-1") }
func StorageS3Key() string      { _ = Load(); return get("S3_KEY", "") }
func StorageS3Secret() string   { _ = Load(); return get("S3_SECRET", "") }
func StorageS3Endpoint() string { _ = Load(); return get("S3_ENDPOINT", "") }
func StorageS3URL() string      { _ = Load(); return get("S3_URL", "") }

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	// Real environment variables win over every file layer, but an
	// in-process Set (tests, CLI overrides) wins over both.
	if value, overridden := overrides[key]; overridden {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
		return fallback
	}
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

// Get reads any config key by name with an optional fallback.
// Keys from .env and app.json are available after config.Load().
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}

// Set overrides a single key in-process, taking precedence over every
// file and environment layer. Intended for tests and for the CLI's flag
// overrides.
func Set(key, value string) {
	_ = Load()
	mu.Lock()
	overrides[strings.ToUpper(strings.TrimSpace(key))] = value
	mu.Unlock()
}
