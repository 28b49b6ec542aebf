package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	ImportDir string
	OutputDir string

	// Fixed business timezone used to derive an order's effective day from
	// its creation timestamp.
	BusinessUTCOffsetHours int

	ReportLocations []string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		ImportDir: getEnv("IMPORT_DIR", filepath.Join(cwd, "data", "import")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		BusinessUTCOffsetHours: getEnvInt("BUSINESS_UTC_OFFSET_HOURS", -3),

		ReportLocations: splitList(getEnv("REPORT_LOCATIONS", "CABA,ZONA NORTE,ZONA SUR")),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
