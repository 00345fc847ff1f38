// Package work adapts configured tasks into units of work for the execution pipeline.
package work

import (
	"context"
	"io"
	"maps"
	"runtime"
	"slices"

	"go.trai.ch/avert/internal/build"
	"go.trai.ch/avert/internal/core/domain"
	"go.trai.ch/avert/internal/core/ports"
	"go.trai.ch/zerr"
)

// Reserved input property names.
const (
	CommandProperty     = "command"
	EnvironmentProperty = "environment"
)

var _ ports.UnitOfWork = (*Task)(nil)

// Factory turns tasks into units of work sharing the same file system and
// process collaborators.
type Factory struct {
	snapshotter ports.FileSystemSnapshotter
	resolver    ports.PathResolver
	executor    ports.Executor
}

// NewFactory creates a new Factory.
func NewFactory(
	snapshotter ports.FileSystemSnapshotter,
	resolver ports.PathResolver,
	executor ports.Executor,
) *Factory {
	return &Factory{snapshotter: snapshotter, resolver: resolver, executor: executor}
}

// New resolves the implementation sources and output roots of task. Input
// paths are resolved when the pipeline snapshots them.
func (f *Factory) New(task *domain.Task) (*Task, error) {
	dir := task.WorkingDir.String()

	sources, err := f.resolver.Resolve(domain.Strings(task.Implementation), dir)
	if err != nil {
		return nil, zerr.With(err, "task", task.Name.String())
	}

	actions := make([][]string, 0, len(task.Actions))
	for _, action := range task.Actions {
		resolved, err := f.resolver.Resolve([]string{action.String()}, dir)
		if err != nil {
			return nil, zerr.With(err, "task", task.Name.String())
		}
		actions = append(actions, resolved)
	}

	outputs := make(map[string][]string, len(task.Outputs))
	for _, prop := range task.Outputs {
		roots, err := f.resolver.Resolve(domain.Strings(prop.Paths), dir)
		if err != nil {
			return nil, zerr.With(zerr.With(err, "task", task.Name.String()), "property", prop.Name)
		}
		outputs[prop.Name] = roots
	}

	return &Task{
		task:        task,
		sources:     sources,
		actions:     actions,
		outputs:     outputs,
		snapshotter: f.snapshotter,
		resolver:    f.resolver,
		executor:    f.executor,
	}, nil
}

// Task is the unit of work of one configured task.
type Task struct {
	task    *domain.Task
	sources []string
	actions [][]string
	outputs map[string][]string

	snapshotter ports.FileSystemSnapshotter
	resolver    ports.PathResolver
	executor    ports.Executor
}

// Identity implements ports.UnitOfWork.
func (t *Task) Identity() string {
	return t.task.Name.String()
}

// DisplayName implements ports.UnitOfWork.
func (t *Task) DisplayName() string {
	return t.task.Name.String()
}

// IsHistoryMaintained implements ports.UnitOfWork.
func (t *Task) IsHistoryMaintained() bool {
	return t.task.HistoryMaintained
}

// HasOverlappingOutputs implements ports.UnitOfWork.
func (t *Task) HasOverlappingOutputs() bool {
	return t.task.OverlappingOutputs
}

// IsCacheable implements ports.UnitOfWork.
func (t *Task) IsCacheable() bool {
	return t.task.Cacheable
}

// VisitImplementations implements ports.UnitOfWork. The primary implementation
// is the command's program together with the declared implementation files;
// each action is an additional implementation.
func (t *Task) VisitImplementations(visitor ports.ImplementationVisitor) {
	visitor.VisitImplementation(domain.ImplementationDescriptor{
		Identity: t.implementationIdentity(),
		Context:  []string{build.Version, runtime.GOOS + "/" + runtime.GOARCH},
		Sources:  t.sources,
	})
	for i, action := range t.actions {
		visitor.VisitAdditionalImplementation(domain.ImplementationDescriptor{
			Identity: "action:" + t.task.Actions[i].String(),
			Sources:  action,
		})
	}
}

func (t *Task) implementationIdentity() string {
	if len(t.task.Command) == 0 {
		return "task:" + t.task.Name.String()
	}
	return "command:" + t.task.Command[0]
}

// VisitInputProperties implements ports.UnitOfWork. Properties are visited in
// name order after the command and its environment.
func (t *Task) VisitInputProperties(visitor ports.InputPropertyVisitor) {
	visitor(CommandProperty, t.task.Command)
	visitor(EnvironmentProperty, t.task.Environment)
	for _, name := range slices.Sorted(maps.Keys(t.task.Properties)) {
		visitor(name, t.task.Properties[name])
	}
}

// VisitInputFileProperties implements ports.UnitOfWork.
func (t *Task) VisitInputFileProperties(visitor ports.InputFilePropertyVisitor) {
	for _, prop := range t.task.Inputs {
		visitor(prop.Name, prop.Normalization, func() (domain.FileSystemSnapshot, error) {
			roots, err := t.resolver.Resolve(domain.Strings(prop.Paths), t.task.WorkingDir.String())
			if err != nil {
				return domain.FileSystemSnapshot{}, zerr.With(err, "property", prop.Name)
			}
			return t.snapshotter.Snapshot(roots)
		})
	}
}

// VisitOutputProperties implements ports.UnitOfWork.
func (t *Task) VisitOutputProperties(visitor ports.OutputPropertyVisitor) {
	for _, prop := range t.task.Outputs {
		visitor(prop.Name, t.outputs[prop.Name])
	}
}

// OutputFileSnapshotsBeforeExecution implements ports.UnitOfWork.
func (t *Task) OutputFileSnapshotsBeforeExecution() (map[string]domain.FileSystemSnapshot, error) {
	return t.snapshotOutputs()
}

// OutputFileSnapshotsAfterExecution implements ports.UnitOfWork.
func (t *Task) OutputFileSnapshotsAfterExecution() (map[string]domain.FileSystemSnapshot, error) {
	return t.snapshotOutputs()
}

func (t *Task) snapshotOutputs() (map[string]domain.FileSystemSnapshot, error) {
	snapshots := make(map[string]domain.FileSystemSnapshot, len(t.outputs))
	for name, roots := range t.outputs {
		snapshot, err := t.snapshotter.Snapshot(roots)
		if err != nil {
			return nil, zerr.With(err, "property", name)
		}
		snapshots[name] = snapshot
	}
	return snapshots, nil
}

// Execute implements ports.UnitOfWork. Command output goes to the progress
// vertex carried by ctx, or is discarded without one.
func (t *Task) Execute(ctx context.Context) error {
	stdout, stderr := io.Discard, io.Discard
	if vertex, ok := ports.VertexFromContext(ctx); ok {
		stdout, stderr = vertex.Stdout(), vertex.Stderr()
	}
	return t.executor.Execute(ctx, t.task, stdout, stderr)
}
