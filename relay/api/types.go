package api

// QueryResponse represents the standard query response format
type QueryResponse struct {
	Data   interface{} `json:"data"`
	Height int64       `json:"height"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}
