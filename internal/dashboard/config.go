package dashboard

import (
	"time"

	"github.com/nikmy/adminui/internal/members"
)

type Config struct {
	LoadAttempts int           `yaml:"loadAttempts"`
	LoadBackoff  time.Duration `yaml:"loadBackoff"`

	// NumericFields must parse as numbers on save.
	NumericFields []members.Field `yaml:"numericFields"`
}

func (c Config) attempts() int {
	return max(c.LoadAttempts, 1)
}

const maxLoadBackoff = time.Minute

// backoff doubles after every failed attempt up to a minute, or up to
// LoadBackoff itself when that is longer.
func (c Config) backoff(attempt int) time.Duration {
	if c.LoadBackoff <= 0 {
		return 0
	}

	limit := max(c.LoadBackoff, maxLoadBackoff)

	d := c.LoadBackoff
	for i := 1; i < attempt && d < limit; i++ {
		d *= 2
	}
	return min(d, limit)
}
