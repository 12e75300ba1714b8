package shared

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Environment variables that override the credentials stored in the config file.
const (
	EnvClientID     = "SPOTIFY_CLIENT_ID"
	EnvClientSecret = "SPOTIFY_CLIENT_SECRET"
	EnvAccessToken  = "SPOTIFY_TOKEN"
	EnvRefreshToken = "SPOTIFY_REFRESH_TOKEN"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Spotify     SpotifyAPIConfig  `toml:"spotify"`
	Storage     StorageConfig     `toml:"storage"`
	Database    DatabaseConfig    `toml:"database"`
	Server      ServerConfig      `toml:"server"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains Spotify API credentials.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	AccessToken  string `toml:"access_token"`
	RefreshToken string `toml:"refresh_token"`
	RedirectURI  string `toml:"redirect_uri"`
}

// SpotifyAPIConfig contains Spotify endpoints and request defaults.
type SpotifyAPIConfig struct {
	APIBaseURL  string `toml:"api_base_url"`
	AuthURL     string `toml:"auth_url"`
	TokenURL    string `toml:"token_url"`
	SearchLimit int    `toml:"search_limit"`
}

// StorageConfig contains the location of persisted sync results.
type StorageConfig struct {
	DataDir string `toml:"data_dir"`
}

// DatabaseConfig contains database connection settings.
//
// An empty path disables sync history.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains the OAuth callback server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Missing returns the names of the credential values that are empty.
func (s SpotifyConfig) Missing() []string {
	var missing []string
	for _, kv := range [][2]string{
		{"client_id", s.ClientID},
		{"client_secret", s.ClientSecret},
		{"access_token", s.AccessToken},
		{"refresh_token", s.RefreshToken},
	} {
		if kv[1] == "" {
			missing = append(missing, kv[0])
		}
	}
	return missing
}

// SetTokens stores a rotated token pair. An empty refresh token keeps the current one.
func (s *SpotifyConfig) SetTokens(accessToken, refreshToken string) {
	s.AccessToken = accessToken
	if refreshToken != "" {
		s.RefreshToken = refreshToken
	}
}

// ApplyEnv overrides credentials with any of the SPOTIFY_* environment variables that are set.
func (c *Config) ApplyEnv() {
	for env, field := range map[string]*string{
		EnvClientID:     &c.Credentials.Spotify.ClientID,
		EnvClientSecret: &c.Credentials.Spotify.ClientSecret,
		EnvAccessToken:  &c.Credentials.Spotify.AccessToken,
		EnvRefreshToken: &c.Credentials.Spotify.RefreshToken,
	} {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			*field = v
		}
	}
}

// DataDir returns the configured data directory, "data" when unset.
func (c *Config) DataDir() string {
	if c.Storage.DataDir == "" {
		return "data"
	}
	return c.Storage.DataDir
}

// DataPath joins name onto the configured data directory.
func (c *Config) DataPath(name string) string {
	return filepath.Join(c.DataDir(), name)
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read config file: %v", ErrMissingConfig, err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveConfig encodes config as TOML and writes it to path, replacing any existing file.
func SaveConfig(path string, config *Config) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
