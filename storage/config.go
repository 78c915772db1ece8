package storage

import "time"

// Config holds storage backend configuration. When PostgresURL is set the
// service uses the Postgres backend, otherwise the file backend rooted at Dir.
type Config struct {
	Dir string `env:"STORAGE_DIR" envDefault:"./data"`

	PostgresURL   string        `env:"PG_CONN_URL"`
	RetryAttempts int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"`
}
