package configs

// Redis configures the optional Redis connection used for sweep leader
// locking when several instances run against one database. An empty Addr
// disables Redis entirely; sweeps then run unlocked, which is safe because
// they are idempotent and serialize per campaign at the database.
type Redis struct {
	// Addr is a host:port pair, e.g. "localhost:6379". Empty disables Redis.
	Addr     string `env:"ADDRESS"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}
