package redisstore

import (
	"context"
	"fmt"

	"github.com/pbanos/id3/tree"
	"gopkg.in/redis.v5"
)

type redisStore struct {
	rc     *redis.Client
	prefix string
	encdec tree.EncodeDecoder
}

/*
New builds a tree.ModelStore backed by a redis DB. Every model is kept
encoded with the given tree.EncodeDecoder under a key made of the prefix
and the destination it is saved at, separated by a colon.

Closing the store does not close the client.
*/
func New(rc *redis.Client, prefix string, encdec tree.EncodeDecoder) tree.ModelStore {
	return &redisStore{rc, prefix, encdec}
}

func (rs *redisStore) Save(ctx context.Context, m *tree.Model, destination string) error {
	if err := ctx.Err(); err != nil {
		return &tree.PersistenceError{Op: "save", Location: destination, Err: err}
	}
	redisID := rs.keyFor(destination)
	data, err := rs.encdec.Encode(m)
	if err != nil {
		return &tree.PersistenceError{Op: "save", Location: destination, Err: fmt.Errorf("encoding model: %w", err)}
	}
	_, err = rs.rc.Set(redisID, data, 0).Result()
	if err != nil {
		return &tree.PersistenceError{Op: "save", Location: destination, Err: fmt.Errorf("storing model %q in redis: %w", redisID, err)}
	}
	return nil
}

func (rs *redisStore) Load(ctx context.Context, source string) (*tree.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, &tree.PersistenceError{Op: "load", Location: source, Err: err}
	}
	redisID := rs.keyFor(source)
	data, err := rs.rc.Get(redisID).Result()
	if err == redis.Nil {
		return nil, &tree.PersistenceError{Op: "load", Location: source, Err: tree.ErrModelNotFound}
	}
	if err != nil {
		return nil, &tree.PersistenceError{Op: "load", Location: source, Err: fmt.Errorf("retrieving model %q: %w", redisID, err)}
	}
	m, err := rs.encdec.Decode([]byte(data))
	if err != nil {
		return nil, &tree.PersistenceError{Op: "load", Location: source, Err: fmt.Errorf("decoding model %q: %w", redisID, err)}
	}
	return m, nil
}

func (rs *redisStore) Close(ctx context.Context) error {
	return nil
}

func (rs *redisStore) keyFor(id string) string {
	if rs.prefix == "" {
		return id
	}
	return fmt.Sprintf("%s:%s", rs.prefix, id)
}
