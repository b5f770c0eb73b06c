package source

import (
	"cmp"
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nikmy/adminui/internal/members"
	"github.com/nikmy/adminui/pkg/errors"
)

const defaultTimeout = 10 * time.Second

func NewHTTP(cfg HTTPConfig) *httpSource {
	return &httpSource{
		url:     cmp.Or(cfg.URL, DefaultURL),
		timeout: cmp.Or(cfg.Timeout, defaultTimeout),
	}
}

type httpSource struct {
	url     string
	timeout time.Duration
}

func (s *httpSource) Fetch(ctx context.Context) ([]members.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
	}

	agent := fiber.Get(s.url).Timeout(timeout)

	code, body, errs := agent.Bytes()
	if len(errs) != 0 {
		return nil, errors.WrapFailf(errors.Collapse(errs), "get %s", s.url)
	}

	if code != http.StatusOK {
		return nil, errors.Failf("get %s: unexpected status %d: %.128s", s.url, code, body)
	}

	return decode(body)
}

func (s *httpSource) Close(context.Context) error {
	return nil
}
