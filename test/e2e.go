package test

import (
	"context"
	"log/slog"

	"github.com/graeme-hill/ami-go/lib"
)

const (
	BasicScriptsDir  = "./basic/scripts"
	BrokenScriptsDir = "./broken/scripts"
	ScriptExtension  = ".ami"
)

// ImportDir loads every script in dir and saves it to store under its file
// name. Nothing is saved when any script fails to load.
func ImportDir(ctx context.Context, store *lib.Store, dir string, logger *slog.Logger) ([]lib.StoredScript, error) {
	scripts, err := lib.ReadScriptsDir(dir, ScriptExtension, logger)
	if err != nil {
		return nil, err
	}

	saved := []lib.StoredScript{}
	for _, s := range scripts {
		stored, err := store.Save(ctx, s.Name, s.Source)
		if err != nil {
			return nil, err
		}
		saved = append(saved, stored)
	}
	return saved, nil
}
