package sse

// Event is one message pushed to stream clients. Address is empty for
// stream-level messages such as keepalives.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Address   string      `json:"address,omitempty"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ConnectedPayload is the first message of every stream
type ConnectedPayload struct {
	ClientID string   `json:"clientId"`
	Address  string   `json:"address"`
	Types    []string `json:"types,omitempty"`
}
