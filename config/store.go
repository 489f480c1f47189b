package config

import (
	"os"
	"path/filepath"

	"github.com/statlab/statlab-cli/internal"
	"gopkg.in/yaml.v3"
)

const (
	statlabName            = "statlab"
	statlabURL             = "https://api.statlab.io"
	statlabAuthHeader      = "Authorization"
	statlabAuthTokenPrefix = "Bearer "
	statlabUserAgent       = "statlab-cli"
	statlabCommandPrompt   = "statlab> "
)

//go:generate mockgen -destination=../client/configmocks_test.go -package=client_test github.com/statlab/statlab-cli/config ConfigStore
type ConfigStore interface {
	Read() (Config, error)
	ReadDefaults() Config
	Write(Config) error
}

// Ensure FileIO implements ConfigStore interface
var _ ConfigStore = &FileIO{}

type FileIO struct {
	configFilePath string
}

func New() *FileIO {
	configPath, _ := getPath()

	return &FileIO{
		configFilePath: configPath,
	}
}

func (f *FileIO) WithConfigPath(configFilePath string) *FileIO {
	f.configFilePath = configFilePath
	return f
}

// Read returns the defaults overlaid with whatever the config file sets.
// Absent keys keep their default value.
func (f *FileIO) Read() (Config, error) {
	result := f.ReadDefaults()

	buf, err := os.ReadFile(f.configFilePath)
	if err != nil {
		return Config{}, err
	}

	if err := yaml.Unmarshal(buf, &result); err != nil {
		return Config{}, err
	}

	return result, nil
}

func (f *FileIO) ReadDefaults() Config {
	return Config{
		Name:            statlabName,
		URL:             statlabURL,
		AuthHeader:      statlabAuthHeader,
		AuthTokenPrefix: statlabAuthTokenPrefix,
		UserAgent:       statlabUserAgent,
		CommandPrompt:   statlabCommandPrompt,
		UseCache:        true,
		// The service is commonly fronted by self-signed staging
		// certificates; verification stays off unless configured on.
		SkipTLSVerify: true,
	}
}

func (f *FileIO) Write(config Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(f.configFilePath, data, 0644)
}

func getPath() (string, error) {
	homeDir, err := internal.GetConfigHome()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, "config.yaml"), nil
}
