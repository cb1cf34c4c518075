package protocol

import "encoding/json"

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Request is the client to server envelope.
//
// Payload is left raw so the router can decode it into the struct matching
// Type. Secure holds an encrypted payload for credential-bearing requests.
type Request struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Secure  string          `json:"secure,omitempty"`
}

// Response is the server to client envelope.
type Response struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

// RawResponse mirrors Response with the data left undecoded.
type RawResponse struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// OK builds a success envelope.
func OK(data any) Response {
	return Response{Status: StatusOK, Data: data}
}

// Fail builds an error envelope.
func Fail(msg string) Response {
	return Response{Status: StatusError, Error: msg}
}

// NewRequest builds a request with payload marshaled to JSON. A nil payload
// is omitted from the frame.
func NewRequest(typ string, payload any) (Request, error) {
	req := Request{Type: typ}
	if payload == nil {
		return req, nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return Request{}, err
	}
	req.Payload = b
	return req, nil
}
