package update

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sandeepkv93/studyquest/internal/storage"
)

type RuntimeConfig struct {
	DataDir           string
	StorageEngine     string
	LogFile           string
	FocusMinutes      int
	StrictMode        bool
	ResultBuffer      int
	Seed              int64
	MuseumUnlockXP    int
	MinSessionMinutes int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DataDir:           defaultDataDir(),
		StorageEngine:     storage.EngineFile,
		LogFile:           "studyquest.log",
		FocusMinutes:      25,
		StrictMode:        false,
		ResultBuffer:      64,
		Seed:              0,
		MuseumUnlockXP:    20000,
		MinSessionMinutes: 1,
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "studyquest")
	}
	return ".studyquest"
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("STUDYQUEST_DATA_DIR"); ok {
		cfg.DataDir = v
	}
	if v, ok := getEnvString("STUDYQUEST_STORAGE"); ok {
		cfg.StorageEngine = strings.ToLower(v)
	}
	if v, ok := getEnvString("STUDYQUEST_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvInt("STUDYQUEST_FOCUS_MINUTES"); ok && v > 0 {
		cfg.FocusMinutes = v
	}
	if v, ok := getEnvBool("STUDYQUEST_STRICT_MODE"); ok {
		cfg.StrictMode = v
	}
	if v, ok := getEnvInt("STUDYQUEST_RESULT_BUFFER"); ok && v > 0 {
		cfg.ResultBuffer = v
	}
	if raw, ok := getEnvString("STUDYQUEST_SEED"); ok {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			cfg.Seed = v
		}
	}
	if v, ok := getEnvInt("STUDYQUEST_MUSEUM_UNLOCK_XP"); ok && v >= 0 {
		cfg.MuseumUnlockXP = v
	}
	if v, ok := getEnvInt("STUDYQUEST_MIN_SESSION_MINUTES"); ok && v >= 0 {
		cfg.MinSessionMinutes = v
	}
	return cfg
}

// LoadDotEnv loads the given .env files into the process environment. Files
// that do not exist are skipped; variables already set are left alone.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return err
		}
	}
	return nil
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
