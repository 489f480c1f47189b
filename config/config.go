package config

// Config holds everything the client needs to reach the computation service.
// It is assembled once by the Manager (defaults, then config file, then
// environment) and not mutated afterwards.
type Config struct {
	Name             string            `yaml:"name"`
	Token            string            `yaml:"token"`
	URL              string            `yaml:"url"`
	AuthHeader       string            `yaml:"auth_header"`
	AuthTokenPrefix  string            `yaml:"auth_token_prefix"`
	UserAgent        string            `yaml:"user_agent"`
	UseCache         bool              `yaml:"use_cache"`
	StrictSignatures bool              `yaml:"strict_signatures"`
	SkipTLSVerify    bool              `yaml:"skip_tls_verify"`
	CommandPrompt    string            `yaml:"command_prompt"`
	CustomHeaders    map[string]string `yaml:"custom_headers"`
}
