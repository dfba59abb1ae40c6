package config

import "time"

type Config struct {
	Port           string        `envconfig:"PORT" default:"3000" validate:"required,numeric"`
	Environment    string        `envconfig:"ENVIRONMENT" default:"development" validate:"oneof=development production test"`
	LogLevel       string        `envconfig:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn error DEBUG INFO WARN ERROR"`
	AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS"`
	WelcomeText    string        `envconfig:"WELCOME_TEXT" default:"Welcome to the chatroom! 🎉"`
	TimeFormat     string        `envconfig:"TIME_FORMAT" default:"3:04:05 PM" validate:"required"`
	SendBuffer     int           `envconfig:"SEND_BUFFER_SIZE" default:"256" validate:"gt=0"`
	ShutdownWait   time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s" validate:"gt=0"`

	// message ledger bounds
	HistoryCapacity  int `envconfig:"HISTORY_CAPACITY" default:"100" validate:"gt=0,lte=10000"`
	MaxMessageLength int `envconfig:"MAX_MESSAGE_LENGTH" default:"500" validate:"gt=0"`
}

// reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
