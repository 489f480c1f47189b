package internal

import (
	"os"
	"path/filepath"
)

const (
	ConfigHomeEnv    = "STATLAB_CONFIG_HOME"
	CacheHomeEnv     = "STATLAB_CACHE_HOME"
	DefaultConfigDir = ".statlab-cli"
	DefaultCacheDir  = "cache"
)

func GetConfigHome() (string, error) {
	var result string

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	result = filepath.Join(homeDir, DefaultConfigDir)

	if tmp := os.Getenv(ConfigHomeEnv); tmp != "" {
		result = tmp
	}

	return result, nil
}

func GetCacheHome() (string, error) {
	var result string

	configHome, err := GetConfigHome()
	if err != nil {
		return "", err
	}

	result = filepath.Join(configHome, DefaultCacheDir)

	if tmp := os.Getenv(CacheHomeEnv); tmp != "" {
		result = tmp
	}

	return result, nil
}
