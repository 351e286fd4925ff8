package server

import "time"

type Config struct {
	Port string

	// ShutdownTimeout bounds graceful shutdown in Run
	ShutdownTimeout time.Duration

	disableMiddleware bool
}

func NewConfig(port string) Config {
	return Config{
		Port:            port,
		ShutdownTimeout: 10 * time.Second,
	}
}
