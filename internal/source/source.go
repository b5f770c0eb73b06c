package source

import (
	"context"

	"github.com/nikmy/adminui/internal/members"
	"github.com/nikmy/adminui/pkg/errors"
	"github.com/nikmy/adminui/pkg/logger"
)

// Source fetches the whole members list.
type Source interface {
	Fetch(ctx context.Context) ([]members.Record, error)
	Close(ctx context.Context) error
}

func New(ctx context.Context, cfg Config, log logger.Logger) (Source, error) {
	log = log.With("source")

	switch cfg.Kind {
	case KindHTTP, "":
		return NewHTTP(cfg.HTTP), nil
	case KindS3:
		s, err := NewS3(ctx, cfg.S3)
		if err != nil {
			return nil, errors.WrapFail(err, "init s3 source")
		}
		return s, nil
	case KindMongo:
		s, err := NewMongo(ctx, cfg.Mongo, log)
		if err != nil {
			return nil, errors.WrapFail(err, "init mongo source")
		}
		return s, nil
	default:
		return nil, errors.Errorf("unknown source kind %q", cfg.Kind)
	}
}
