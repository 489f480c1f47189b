package http

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/statlab/statlab-cli/api"
	"github.com/statlab/statlab-cli/config"
)

const (
	contentType              = "application/json"
	errFailedToRead          = "failed to read response: %w"
	errFailedToCreateRequest = "failed to create request: %w"
	errFailedToMakeRequest   = "failed to make request: %w"
	headerContentType        = "Content-Type"
	headerUserAgent          = "User-Agent"
	headerRequestID          = "X-Request-Id"
)

//go:generate mockgen -destination=../../client/callermocks_test.go -package=client_test github.com/statlab/statlab-cli/api/http Caller
type Caller interface {
	Post(url string, body []byte) (*api.HTTPResponse, error)
	Get(url string) (*api.HTTPResponse, error)
}

type RestCaller struct {
	client *http.Client
	config config.Config
}

// Ensure RestCaller implements Caller interface
var _ Caller = &RestCaller{}

func New(cfg config.Config) *RestCaller {
	var client *http.Client
	if cfg.SkipTLSVerify {
		transport := &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
		client = &http.Client{
			Transport: transport,
		}
	} else {
		client = &http.Client{}
	}

	return &RestCaller{
		client: client,
		config: cfg,
	}
}

type CallerFactory func(cfg config.Config) Caller

func RealCallerFactory(cfg config.Config) Caller {
	return New(cfg)
}

func (r *RestCaller) Get(url string) (*api.HTTPResponse, error) {
	return r.doRequest(http.MethodGet, url, nil)
}

func (r *RestCaller) Post(url string, body []byte) (*api.HTTPResponse, error) {
	return r.doRequest(http.MethodPost, url, body)
}

// doRequest performs one round-trip and returns the response whatever its
// status. Only transport failures become errors; the client layer decides what
// a non-200 status means.
func (r *RestCaller) doRequest(method, url string, body []byte) (*api.HTTPResponse, error) {
	req, err := r.newRequest(method, url, body)
	if err != nil {
		return nil, fmt.Errorf(errFailedToCreateRequest, err)
	}

	response, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf(errFailedToMakeRequest, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf(errFailedToRead, err)
	}

	return &api.HTTPResponse{
		Status:  response.StatusCode,
		Headers: flattenHeaders(response.Header),
		Body:    raw,
	}, nil
}

func (r *RestCaller) newRequest(method, url string, body []byte) (*http.Request, error) {
	req, err := http.NewRequest(method, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}

	if r.config.Token != "" {
		req.Header.Set(r.config.AuthHeader, r.config.AuthTokenPrefix+r.config.Token)
	}
	req.Header.Set(headerContentType, contentType)
	req.Header.Set(headerUserAgent, r.config.UserAgent)
	req.Header.Set(headerRequestID, uuid.NewString())

	for k, v := range r.config.CustomHeaders {
		req.Header.Set(k, v)
	}

	return req, nil
}

func flattenHeaders(headers http.Header) map[string]string {
	result := make(map[string]string, len(headers))
	for k := range headers {
		result[k] = headers.Get(k)
	}
	return result
}
