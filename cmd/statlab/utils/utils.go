package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/statlab/statlab-cli/api"
)

// ParseLine splits an interactive input line into a route and an optional JSON
// payload, e.g. `/compute/pca {"data":[[1,2]],"n_components":1}`.
func ParseLine(line string) (string, any, error) {
	fields := strings.SplitN(strings.TrimSpace(line), " ", 2)

	route := fields[0]
	if route == "" {
		return "", nil, errors.New("you must specify a route")
	}

	if len(fields) == 1 {
		return route, nil, nil
	}

	payload, err := ParsePayload(fields[1])
	if err != nil {
		return "", nil, err
	}

	return route, payload, nil
}

// ParsePayload decodes a JSON payload argument. An empty string means no
// payload.
func ParsePayload(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("invalid JSON payload: %w", err)
	}

	return payload, nil
}

// FormatResponse renders a response the way the CLI prints it: pretty JSON for
// a 200, an Error line plus the raw body for anything else.
func FormatResponse(response *api.Response) (string, error) {
	if response.StatusCode != http.StatusOK {
		return fmt.Sprintf("Error: %d\n%s", response.StatusCode, string(response.Body)), nil
	}

	pretty, err := json.MarshalIndent(response.Data, "", "  ")
	if err != nil {
		return "", err
	}

	return string(pretty), nil
}
