package publish

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"trivia-harvester/internal/domain"

	"go.uber.org/zap"
)

// CommandRunner runs name with args and returns its exit code and combined output.
// A non-nil error means the process could not be started or waited on.
type CommandRunner func(ctx context.Context, name string, args ...string) (int, []byte, error)

// ScriptPublisher pushes the output file to a git remote by running a shell script.
// It only runs when both git and bash are available.
type ScriptPublisher struct {
	script   string
	lookPath func(file string) (string, error)
	run      CommandRunner
	logger   *zap.Logger
}

func NewScriptPublisher(script string, logger *zap.Logger) *ScriptPublisher {
	return &ScriptPublisher{
		script:   script,
		lookPath: exec.LookPath,
		run:      runCommand,
		logger:   logger,
	}
}

func (p *ScriptPublisher) Name() string { return "script" }

// Publish implements domain.Publisher. The script's exit code is logged and never acted upon.
func (p *ScriptPublisher) Publish(ctx context.Context, snapshot *domain.Snapshot) error {
	if p.script == "" {
		return nil
	}
	for _, tool := range []string{"git", "bash"} {
		if _, err := p.lookPath(tool); err != nil {
			p.logger.Debug("Publish tool not available, skipping", zap.String("tool", tool))
			return nil
		}
	}

	p.logger.Info("Uploading to remote repository. Make sure your SSH keys have been added.",
		zap.String("script", p.script),
		zap.String("run_id", snapshot.RunID),
	)
	code, output, err := p.run(ctx, "bash", p.script)
	if err != nil {
		return err
	}
	p.logger.Info("Publish script exited",
		zap.Int("exit_code", code),
		zap.ByteString("output", bytes.TrimSpace(output)),
	)
	return nil
}

func runCommand(ctx context.Context, name string, args ...string) (int, []byte, error) {
	output, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err == nil {
		return 0, output, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), output, nil
	}
	return -1, output, err
}
