package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"trivia-harvester/internal/domain"
	"trivia-harvester/internal/util"

	"go.uber.org/zap"
)

// FilePersister overwrites a JSON file with the normalized items.
type FilePersister struct {
	path   string
	logger *zap.Logger
}

func NewFilePersister(path string, logger *zap.Logger) *FilePersister {
	return &FilePersister{path: path, logger: logger}
}

func (p *FilePersister) Path() string {
	return p.path
}

// Persist writes items as a JSON array to a temporary file next to the target and renames
// it into place, so readers never observe a partially written file.
func (p *FilePersister) Persist(ctx context.Context, items []domain.NormalizedItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if items == nil {
		items = []domain.NormalizedItem{}
	}

	data, err := util.MarshalJSON(items)
	if err != nil {
		return domain.NewPersistError(p.path, fmt.Errorf("failed to encode items: %w", err))
	}

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.NewPersistError(p.path, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(p.path)+".*.tmp")
	if err != nil {
		return domain.NewPersistError(p.path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return domain.NewPersistError(p.path, err)
	}
	if err := tmp.Close(); err != nil {
		return domain.NewPersistError(p.path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return domain.NewPersistError(p.path, err)
	}
	if err := os.Rename(tmpName, p.path); err != nil {
		return domain.NewPersistError(p.path, err)
	}

	p.logger.Info("Wrote output file", zap.String("path", p.path), zap.Int("count", len(items)))
	return nil
}
