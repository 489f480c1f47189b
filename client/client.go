package client

import (
	"encoding/json"
	"fmt"
	stdhttp "net/http"
	"strings"

	"github.com/statlab/statlab-cli/api"
	"github.com/statlab/statlab-cli/api/http"
	"github.com/statlab/statlab-cli/cache"
	"github.com/statlab/statlab-cli/config"
	"github.com/statlab/statlab-cli/signature"
	"go.uber.org/zap"
)

const signatureField = "signature"

// ConfigurationError means the client could not be constructed: no token was
// given and none was found in the environment or the config file.
type ConfigurationError struct {
	EnvVar string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing environment variable: %s", e.EnvVar)
}

// Client is a transport and caching shim for the statlab computation API. It
// never computes anything itself: it signs requests, consults the local cache,
// and forwards the rest to the service.
type Client struct {
	Config config.Config

	caller http.Caller
	cache  *cache.Cache
	signer *signature.Generator
}

// New builds a client from the layered configuration (defaults, config file,
// STATLAB_* environment). An explicitly supplied token takes precedence over
// the layered one; with neither present, construction fails before any
// network access.
func New(callerFactory http.CallerFactory, cs config.ConfigStore, store cache.Store, token string) (*Client, error) {
	cm := config.NewManager(cs).WithEnvironment()
	configuration := cm.Config

	if token != "" {
		configuration.Token = token
	}
	if configuration.Token == "" {
		return nil, &ConfigurationError{EnvVar: cm.TokenEnvVarName()}
	}

	configuration.URL = strings.TrimSuffix(configuration.URL, "/")

	signer := signature.New()
	if configuration.StrictSignatures {
		signer = signer.WithMode(signature.Strict)
	}

	return &Client{
		Config: configuration,
		caller: callerFactory(configuration),
		cache:  cache.New(store),
		signer: signer,
	}, nil
}

func (c *Client) WithServiceURL(url string) *Client {
	c.Config.URL = strings.TrimSuffix(url, "/")
	return c
}

func (c *Client) WithCaching(enabled bool) *Client {
	c.Config.UseCache = enabled
	return c
}

// Request signs the payload and dispatches the call. The method defaults to
// POST; passing a payload forces POST regardless, so the signature always
// travels in the request body and never in a URL or query string.
func (c *Client) Request(route string, payload any, method string) (*api.Response, error) {
	sig, err := c.signer.Sign(route, payload)
	if err != nil {
		return nil, err
	}

	return c.RequestSigned(route, payload, method, sig)
}

// RequestSigned is Request with a caller-supplied signature, bypassing
// generation. Useful for tests and for forcing a particular cache key.
func (c *Client) RequestSigned(route string, payload any, method, sig string) (*api.Response, error) {
	method = strings.ToUpper(method)

	// Read eligibility is judged on the requested method, before the POST
	// override below: a GET request that carries a payload still reads the
	// cache even though it is dispatched as POST. Writes happen for every
	// successful response regardless of method.
	readCache := c.Config.UseCache && (method == stdhttp.MethodGet || payload == nil)

	if method == "" || payload != nil {
		method = stdhttp.MethodPost
	}

	if readCache {
		if entry, ok := c.cache.Get(sig); ok {
			return &api.Response{
				StatusCode: entry.StatusCode,
				Data:       entry.Data,
				Headers:    entry.Headers,
			}, nil
		}
	}

	url := c.Config.URL + route

	var (
		raw *api.HTTPResponse
		err error
	)
	if method == stdhttp.MethodGet {
		raw, err = c.caller.Get(url)
	} else {
		var body []byte
		if body, err = buildBody(payload, sig); err != nil {
			return nil, err
		}
		raw, err = c.caller.Post(url, body)
	}
	if err != nil {
		return nil, err
	}

	result := &api.Response{
		StatusCode: raw.Status,
		Headers:    raw.Headers,
		Body:       raw.Body,
	}

	parsed := false
	if len(raw.Body) > 0 {
		if jsonErr := json.Unmarshal(raw.Body, &result.Data); jsonErr != nil {
			if raw.Status == stdhttp.StatusOK {
				zap.S().Warnf("response for %s is not valid JSON, skipping cache: %s", route, jsonErr)
			}
		} else {
			parsed = true
		}
	}

	if c.Config.UseCache && raw.Status == stdhttp.StatusOK && parsed {
		entry := cache.Entry{
			StatusCode: raw.Status,
			Data:       result.Data,
			Headers:    raw.Headers,
		}
		if putErr := c.cache.Put(sig, entry); putErr != nil {
			zap.S().Debugf("failed to cache response for %s: %s", route, putErr)
		}
	}

	return result, nil
}

// ClearCache removes every cached response.
func (c *Client) ClearCache() error {
	return c.cache.Clear()
}

// CacheInfo reports the cache directory, record count and total size.
func (c *Client) CacheInfo() cache.Stats {
	return c.cache.Info()
}

// buildBody serializes the payload with the signature injected as a top-level
// field. Payloads that are not JSON objects (arrays, scalars) are sent
// unchanged since there is no object to carry the signature.
func buildBody(payload any, sig string) ([]byte, error) {
	if payload == nil {
		return json.Marshal(map[string]any{signatureField: sig})
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, &signature.SerializationError{Err: err}
	}

	var object map[string]any
	if err := json.Unmarshal(raw, &object); err != nil {
		return raw, nil
	}

	object[signatureField] = sig
	return json.Marshal(object)
}
