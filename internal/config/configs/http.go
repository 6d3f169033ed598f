package configs

import "fmt"

// HTTP defines configuration for the HTTP server.
type HTTP struct {
	// Host is the interface to bind. Empty binds all interfaces.
	Host string `env:"HOST"`
	// Port is the TCP port the HTTP server will listen on. Defaults to 8080.
	Port uint16 `env:"PORT" envDefault:"8080"`
}

// Addr renders the host:port pair for net/http.
func (c HTTP) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
