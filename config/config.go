package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"rentscout/models"
)

type Config struct {
	APIURL      string
	DataDir     string
	DBPath      string
	LogPath     string
	LogLevel    string
	HTTPTimeout time.Duration
	Watch       WatchConfig
	Searches    map[string]*SavedSearch
}

type WatchConfig struct {
	Interval time.Duration
	Cron     string
}

// SavedSearch is one watched filter set, loaded from config/searches/*.yaml.
type SavedSearch struct {
	Label          string   `yaml:"label"`
	Query          string   `yaml:"query"`
	MinPrice       *float64 `yaml:"min_price"`
	MaxPrice       *float64 `yaml:"max_price"`
	MinBedrooms    *int     `yaml:"min_bedrooms"`
	MaxBedrooms    *int     `yaml:"max_bedrooms"`
	PropertyType   string   `yaml:"property_type"`
	FurnishingType string   `yaml:"furnishing_type"`
	Outcode        string   `yaml:"outcode"`
	Notify         bool     `yaml:"notify"`
}

// Filter converts the saved search into the query filter the API client
// understands.
func (s *SavedSearch) Filter() models.Filter {
	return models.Filter{
		Query:          s.Query,
		MinPrice:       s.MinPrice,
		MaxPrice:       s.MaxPrice,
		MinBedrooms:    s.MinBedrooms,
		MaxBedrooms:    s.MaxBedrooms,
		PropertyType:   s.PropertyType,
		FurnishingType: s.FurnishingType,
		Outcode:        s.Outcode,
	}
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	dataDir := getEnv("RENTSCOUT_DATA_DIR", defaultDataDir())

	cfg := &Config{
		APIURL:      getEnv("RENTSCOUT_API_URL", "http://localhost:8000"),
		DataDir:     dataDir,
		DBPath:      filepath.Join(dataDir, "rentscout.db"),
		LogPath:     getEnv("LOG_PATH", filepath.Join(dataDir, "rentscout.log")),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		HTTPTimeout: time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		Watch: WatchConfig{
			Cron: os.Getenv("WATCH_CRON"),
		},
		Searches: make(map[string]*SavedSearch),
	}

	if interval := os.Getenv("WATCH_INTERVAL"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err == nil {
			cfg.Watch.Interval = d
		}
	}

	if err := cfg.loadSavedSearches(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadSavedSearches() error {
	searchDir := "config/searches"
	entries, err := os.ReadDir(searchDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}

		path := filepath.Join(searchDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		var search SavedSearch
		if err := yaml.Unmarshal(data, &search); err != nil {
			return err
		}
		if search.Label == "" {
			search.Label = strings.TrimSuffix(entry.Name(), ".yaml")
		}

		c.Searches[search.Label] = &search
	}

	return nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rentscout"
	}
	return filepath.Join(home, ".rentscout")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
