package api

// HTTPResponse is the raw result of a single round-trip: status, headers and
// the unparsed body. Non-2xx statuses are carried here, not turned into errors,
// so the caller can decide what a failed computation looks like.
type HTTPResponse struct {
	Status  int
	Headers map[string]string
	Body    []byte
}

// Response is what the client hands back for a computation request. Data holds
// the parsed JSON body when the server returned one; Body always holds the raw
// bytes for responses that came off the wire (it is empty for cache hits).
type Response struct {
	StatusCode int               `json:"status_code"`
	Data       any               `json:"data"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"-"`
}

type ErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
