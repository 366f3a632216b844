package root

import (
	"context"

	"github.com/Goutamdhanani/30-days-challenge/internal/engine"
	"github.com/Goutamdhanani/30-days-challenge/internal/planner"
	"github.com/Goutamdhanani/30-days-challenge/internal/storage"
)

func openService(ctx context.Context) (*engine.Service, func(), error) {
	path, err := storage.DefaultDBPath()
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}

	repo := storage.NewChallengeRepo(db)
	gen := planner.NewClient(planner.ConfigFromEnv(), logger())
	return engine.NewService(repo, gen), cleanup, nil
}
