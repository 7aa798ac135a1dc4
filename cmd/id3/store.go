package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pbanos/id3/tree"
	"github.com/pbanos/id3/tree/json"
	"github.com/pbanos/id3/tree/redisstore"
	"gopkg.in/redis.v5"
)

const (
	fileStore  = "file"
	redisStore = "redis"
)

/*
modelStore returns the tree.ModelStore selected with the store flag and
a function to release it once done.
*/
func (rcc *rootCmdConfig) modelStore() (tree.ModelStore, func(), error) {
	encdec := json.NewEncodeDecoder()
	switch rcc.storeKind {
	case fileStore:
		ms := tree.NewFileStore(encdec)
		return ms, func() { ms.Close(context.Background()) }, nil
	case redisStore:
		rcc.Logf("Connecting to redis at %s, db %d...", rcc.redisAddr, rcc.redisDB)
		rc := redis.NewClient(&redis.Options{Addr: rcc.redisAddr, DB: rcc.redisDB})
		_, err := rc.Ping().Result()
		if err != nil {
			rc.Close()
			return nil, nil, fmt.Errorf("connecting to redis at %s: %w", rcc.redisAddr, err)
		}
		ms := redisstore.New(rc, rcc.redisPrefix, encdec)
		return ms, func() {
			ms.Close(context.Background())
			rc.Close()
		}, nil
	}
	return nil, nil, fmt.Errorf("unknown model store %s", rcc.storeKind)
}

/*
loadModel loads the model at the given location of the selected store.
*/
func (rcc *rootCmdConfig) loadModel(ctx context.Context, location string) (*tree.Model, error) {
	ms, release, err := rcc.modelStore()
	if err != nil {
		return nil, err
	}
	defer release()
	rcc.Logf("Loading model from %s...", location)
	return ms.Load(ctx, location)
}

/*
saveModel saves the model at the given location of the selected store.
An empty location on the file store writes the model on STDOUT.
*/
func (rcc *rootCmdConfig) saveModel(ctx context.Context, m *tree.Model, location string) error {
	if location == "" && rcc.storeKind == fileStore {
		err := json.WriteModel(os.Stdout, m)
		if err != nil {
			return &tree.PersistenceError{Op: "save", Location: "STDOUT", Err: err}
		}
		return nil
	}
	ms, release, err := rcc.modelStore()
	if err != nil {
		return err
	}
	defer release()
	rcc.Logf("Saving model %s to %s...", m.ID, location)
	return ms.Save(ctx, m, location)
}
