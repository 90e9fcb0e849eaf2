package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Data directory for the metadata database
	DataDir string

	// Art cache settings
	Art ArtConfig

	// MusicBrainz / Cover Art Archive settings
	MusicBrainz MusicBrainzConfig

	// How often the deferred task worker polls for due tasks
	TaskInterval time.Duration

	// How long cover lookups (including negative ones) stay cached
	CoverCacheTTL time.Duration
}

// ArtConfig holds cover-art cache configuration
type ArtConfig struct {
	// Directory cover images are stored in
	Dir string

	// Public URL prefix corresponding to Dir
	BaseURL string

	// Thumbnail dimensions covers are cropped to
	ThumbWidth  int
	ThumbHeight int
}

// MusicBrainzConfig holds external catalog configuration
type MusicBrainzConfig struct {
	// Base URLs, overridable for testing
	BaseURL         string
	CoverArtBaseURL string

	// Home URL included in the User-Agent per MusicBrainz etiquette
	HomeURL string
}

// UserAgent builds the identifying client signature sent with every
// outbound request.
func (c MusicBrainzConfig) UserAgent() string {
	ua := "scrobbble-addon/0.1.0"
	if c.HomeURL != "" {
		ua += " (+" + c.HomeURL + ")"
	}
	return ua
}

// Load reads configuration from file and environment
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	configDir := getConfigDir()
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	dataDir := defaultDataDir()

	// Set defaults
	v.SetDefault("data_dir", dataDir)
	v.SetDefault("art.dir", filepath.Join(dataDir, "scrobbble-art"))
	v.SetDefault("art.base_url", "")
	v.SetDefault("art.thumb_width", 150)
	v.SetDefault("art.thumb_height", 150)
	v.SetDefault("musicbrainz.base_url", "https://musicbrainz.org/ws/2")
	v.SetDefault("musicbrainz.cover_art_base_url", "https://coverartarchive.org")
	v.SetDefault("musicbrainz.home_url", "")
	v.SetDefault("task_interval", 15)
	v.SetDefault("cover_cache_ttl_days", 30)

	// Read config file (optional - don't fail if missing)
	_ = v.ReadInConfig()

	// Read from environment variables
	v.SetEnvPrefix("SCROBBBLE")
	v.AutomaticEnv()

	// Map config to struct
	cfg := &Config{
		DataDir: v.GetString("data_dir"),
		Art: ArtConfig{
			Dir:         v.GetString("art.dir"),
			BaseURL:     v.GetString("art.base_url"),
			ThumbWidth:  v.GetInt("art.thumb_width"),
			ThumbHeight: v.GetInt("art.thumb_height"),
		},
		MusicBrainz: MusicBrainzConfig{
			BaseURL:         v.GetString("musicbrainz.base_url"),
			CoverArtBaseURL: v.GetString("musicbrainz.cover_art_base_url"),
			HomeURL:         v.GetString("musicbrainz.home_url"),
		},
		TaskInterval:  time.Duration(v.GetInt("task_interval")) * time.Second,
		CoverCacheTTL: time.Duration(v.GetInt("cover_cache_ttl_days")) * 24 * time.Hour,
	}

	return cfg, nil
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "scrobbble-addon")

	// Create config directory if it doesn't exist
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

// defaultDataDir returns the default data directory path
func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(homeDir, ".local", "share", "scrobbble-addon")
}

// Save writes configuration to file
func (c *Config) Save() error {
	v := viper.New()

	// Set config file path
	configDir := getConfigDir()
	configFile := filepath.Join(configDir, "config.yaml")

	// Set values in viper
	v.Set("data_dir", c.DataDir)
	v.Set("art.dir", c.Art.Dir)
	v.Set("art.base_url", c.Art.BaseURL)
	v.Set("art.thumb_width", c.Art.ThumbWidth)
	v.Set("art.thumb_height", c.Art.ThumbHeight)
	v.Set("musicbrainz.base_url", c.MusicBrainz.BaseURL)
	v.Set("musicbrainz.cover_art_base_url", c.MusicBrainz.CoverArtBaseURL)
	v.Set("musicbrainz.home_url", c.MusicBrainz.HomeURL)
	v.Set("task_interval", int(c.TaskInterval/time.Second))
	v.Set("cover_cache_ttl_days", int(c.CoverCacheTTL/(24*time.Hour)))

	// Write to file
	return v.WriteConfigAs(configFile)
}
