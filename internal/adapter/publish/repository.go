package publish

import (
	"context"
	"fmt"

	"trivia-harvester/internal/domain"

	"go.uber.org/zap"
)

// RepositoryPublisher mirrors the snapshot into the question repository.
type RepositoryPublisher struct {
	repo   domain.QuestionRepository
	logger *zap.Logger
}

func NewRepositoryPublisher(repo domain.QuestionRepository, logger *zap.Logger) *RepositoryPublisher {
	return &RepositoryPublisher{repo: repo, logger: logger}
}

func (p *RepositoryPublisher) Name() string { return "database" }

// Publish implements domain.Publisher. After replacing the rows it reads the row count back
// and fails when the table does not hold exactly the snapshot.
func (p *RepositoryPublisher) Publish(ctx context.Context, snapshot *domain.Snapshot) error {
	if err := p.repo.ReplaceAll(ctx, snapshot.RunID, snapshot.Items); err != nil {
		return err
	}
	stored, err := p.repo.Count(ctx)
	if err != nil {
		return err
	}
	if stored != len(snapshot.Items) {
		return fmt.Errorf("database holds %d questions after storing %d", stored, len(snapshot.Items))
	}

	p.logger.Info("Stored questions in database",
		zap.String("run_id", snapshot.RunID),
		zap.Int("count", stored),
	)
	return nil
}
