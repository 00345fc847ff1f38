package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/avert/internal/adapters/config"
	"go.trai.ch/avert/internal/app"
	"go.trai.ch/avert/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func provide(a *app.App, log *mocks.MockLogger) ComponentProvider {
	return func(context.Context) (*app.Components, error) {
		return app.NewComponents(a, log), nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, new(bytes.Buffer),
		provide(app.New(app.Dependencies{}), mockLogger))

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "avert version")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(context.Context) (*app.Components, error) {
		return nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 and logs when a command fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).Times(1)

	// No project file exists below the temporary directory.
	application := app.New(app.Dependencies{ConfigLoader: config.NewLoader(mockLogger)}).WithWorkDir(t.TempDir())

	exitCode := run(context.Background(), []string{"run", "target"}, new(bytes.Buffer), new(bytes.Buffer),
		provide(application, mockLogger))

	assert.Equal(t, 1, exitCode)
}
