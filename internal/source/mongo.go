package source

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nikmy/adminui/internal/members"
	"github.com/nikmy/adminui/pkg/errors"
	"github.com/nikmy/adminui/pkg/logger"
	"github.com/nikmy/adminui/pkg/mongotools"
)

func NewMongo(ctx context.Context, cfg MongoConfig, log logger.Logger) (*mongoSource, error) {
	opts := options.Client().
		ApplyURI(cfg.URL).
		SetTimeout(cfg.Timeout)

	if cfg.Auth.Username != "" {
		opts.SetAuth(options.Credential{
			Username: cfg.Auth.Username,
			Password: cfg.Auth.Password,
		})
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.WrapFail(err, "connect to mongo db")
	}

	return &mongoSource{
		coll: client.Database(cfg.Database).Collection(cfg.Collection),
		log:  log.With("mongo"),
	}, nil
}

type mongoSource struct {
	coll *mongo.Collection
	log  logger.Logger
}

func (m *mongoSource) Fetch(ctx context.Context) ([]members.Record, error) {
	c, err := m.coll.Find(ctx, mongotools.All(), mongotools.WithoutID())
	if err != nil {
		return nil, errors.WrapFail(err, "find members")
	}

	records, err := mongotools.FilterFunc[members.Record](ctx, c, nil)
	if err != nil {
		return nil, errors.WrapFail(err, "decode members")
	}

	m.log.Debugf("fetched %d members from %s", len(records), m.coll.Name())
	return records, nil
}

func (m *mongoSource) Close(ctx context.Context) error {
	err := m.coll.Database().Client().Disconnect(ctx)
	return errors.WrapFail(err, "close mongo db connection")
}
