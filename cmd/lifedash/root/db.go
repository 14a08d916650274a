package root

import (
	"context"
	"database/sql"

	"github.com/madspljoensson/life-dashboard/internal/engine"
	"github.com/madspljoensson/life-dashboard/internal/storage"
)

func openDB(ctx context.Context, path string) (*sql.DB, func(), error) {
	if path == "" {
		resolved, err := storage.ResolveDBPath()
		if err != nil {
			return nil, nil, err
		}
		path = resolved
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

func openService(ctx context.Context, path string) (*engine.Service, func(), error) {
	db, cleanup, err := openDB(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return engine.NewService(db), cleanup, nil
}
