package config

import (
	"os"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Manager struct {
	configStore ConfigStore
	Config      Config
}

func NewManager(cs ConfigStore) *Manager {
	configuration, err := cs.Read()
	if err != nil {
		configuration = cs.ReadDefaults()
	}

	return &Manager{configStore: cs, Config: configuration}
}

// WithEnvironment overlays STATLAB_* environment variables on top of the
// current configuration. Every yaml-tagged field maps to one variable, e.g.
// STATLAB_TOKEN, STATLAB_USE_CACHE.
func (c *Manager) WithEnvironment() *Manager {
	c.Config = replaceByEnvironment(c.Config)
	return c
}

func (c *Manager) TokenEnvVarName() string {
	return strings.ToUpper(c.Config.Name) + "_" + "TOKEN"
}

// ShowConfig serializes the current configuration to a YAML string.
func (c *Manager) ShowConfig() (string, error) {
	data, err := yaml.Marshal(c.Config)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func replaceByEnvironment(configuration Config) Config {
	t := reflect.TypeOf(configuration)
	v := reflect.ValueOf(&configuration).Elem()

	prefix := strings.ToUpper(configuration.Name) + "_"
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("yaml")
		if tag == "name" {
			continue
		}

		value := os.Getenv(prefix + strings.ToUpper(tag))
		if value == "" {
			continue
		}

		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(value)
		case reflect.Bool:
			if parsed, err := strconv.ParseBool(value); err == nil {
				field.SetBool(parsed)
			}
		case reflect.Int:
			if parsed, err := strconv.Atoi(value); err == nil {
				field.SetInt(int64(parsed))
			}
		case reflect.Float64:
			if parsed, err := strconv.ParseFloat(value, 64); err == nil {
				field.SetFloat(parsed)
			}
		}
	}

	return configuration
}
