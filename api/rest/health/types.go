package health

// represents the health check response
type Response struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version,omitempty"`
	Clients int    `json:"clients"`
}

type PingResponse struct {
	Message string `json:"message"`
}
