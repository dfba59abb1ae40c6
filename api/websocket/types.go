package websocket

// connection settings taken from configuration
type Options struct {
	// outbound buffer per connection
	SendBuffer int

	// restricts origins to AllowedOrigins when set
	Production     bool
	AllowedOrigins []string
}
