package mongotools

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nikmy/adminui/pkg/errors"
)

func All() bson.M {
	return bson.M{}
}

// WithoutID hides the object id from found documents.
func WithoutID() *options.FindOptions {
	return options.Find().SetProjection(bson.M{"_id": 0})
}

// FilterFunc decodes every document of c, keeping those passing filterFunc
// (all of them if it is nil). The cursor is closed on return.
func FilterFunc[T any](ctx context.Context, c *mongo.Cursor, filterFunc func(T) bool) ([]T, error) {
	defer c.Close(ctx)

	var filtered []T
	for c.Next(ctx) {
		var item T
		err := c.Decode(&item)
		if err != nil {
			return nil, errors.WrapFail(err, "decode item")
		}

		if filterFunc == nil || filterFunc(item) {
			filtered = append(filtered, item)
		}
	}

	return filtered, c.Err()
}
