package ports

import (
	"context"
	"io"

	"go.trai.ch/avert/internal/core/domain"
)

// Executor defines the interface for executing tasks.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the task's command, streaming its output to stdout and stderr.
	//
	// It returns an error if the command cannot be started or exits unsuccessfully.
	Execute(ctx context.Context, task *domain.Task, stdout, stderr io.Writer) error
}
