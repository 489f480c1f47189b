package cache

import "time"

// Entry is one persisted record of a prior successful response.
type Entry struct {
	Signature  string            `json:"signature"`
	StatusCode int               `json:"status_code"`
	Data       any               `json:"data"`
	Headers    map[string]string `json:"headers"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// Stats describes the persisted state of a cache directory.
type Stats struct {
	Directory  string `json:"directory"`
	Count      int    `json:"count"`
	TotalBytes int64  `json:"total_bytes"`
}
