// Package domain contains the core domain models of the build-avoidance engine.
package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// AllTasksTarget selects every task in the graph.
const AllTasksTarget = "all"

// Graph represents a dependency graph of tasks.
type Graph struct {
	tasks          map[InternedString]Task
	dependents     map[InternedString][]InternedString
	executionOrder []InternedString
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		tasks:      make(map[InternedString]Task),
		dependents: make(map[InternedString][]InternedString),
	}
}

// AddTask adds a task to the graph.
// It returns an error if a task with the same name already exists.
func (g *Graph) AddTask(t *Task) error {
	if _, exists := g.tasks[t.Name]; exists {
		return zerr.With(ErrTaskAlreadyExists, "task_name", t.Name.String())
	}
	g.tasks[t.Name] = *t
	for _, dep := range t.Dependencies {
		g.dependents[dep] = append(g.dependents[dep], t.Name)
	}
	return nil
}

// Task returns the task with the given name.
func (g *Graph) Task(name string) (Task, bool) {
	t, ok := g.tasks[NewInternedString(name)]
	return t, ok
}

// TaskCount returns the number of tasks in the graph.
func (g *Graph) TaskCount() int {
	return len(g.tasks)
}

// Dependents returns the tasks that directly depend on name.
func (g *Graph) Dependents(name InternedString) []InternedString {
	return g.dependents[name]
}

// sortedNames returns task names in lexical order so traversal is deterministic.
func (g *Graph) sortedNames() []InternedString {
	names := make([]InternedString, 0, len(g.tasks))
	for name := range g.tasks {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b InternedString) int { return strings.Compare(a.String(), b.String()) })
	return names
}

// Validate checks for cycles in the graph using a topological sort.
// It populates the executionOrder slice if successful.
func (g *Graph) Validate() error {
	g.executionOrder = make([]InternedString, 0, len(g.tasks))
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		task, exists := g.tasks[u]
		if !exists {
			return zerr.With(ErrMissingDependency, "dependency", u.String())
		}

		for _, dep := range task.Dependencies {
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, u)
		return nil
	}

	for _, name := range g.sortedNames() {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (g *Graph) buildCycleError(path []InternedString, dep InternedString) error {
	var b strings.Builder
	start := slices.Index(path, dep)
	for _, node := range path[start:] {
		b.WriteString(node.String())
		b.WriteString(" -> ")
	}
	b.WriteString(dep.String())
	return zerr.With(ErrCycleDetected, "cycle", b.String())
}

// Walk returns an iterator that yields tasks in execution order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[Task] {
	return func(yield func(Task) bool) {
		for _, name := range g.executionOrder {
			if !yield(g.tasks[name]) {
				return
			}
		}
	}
}

// Closure returns a validated graph holding the targets and everything they
// depend on. The target "all" selects the whole graph.
func (g *Graph) Closure(targets []string) (*Graph, error) {
	if len(targets) == 0 {
		return nil, ErrNoTargetsSpecified
	}
	if slices.Contains(targets, AllTasksTarget) {
		targets = make([]string, 0, len(g.tasks))
		for _, name := range g.sortedNames() {
			targets = append(targets, name.String())
		}
	}

	sub := NewGraph()
	var include func(name InternedString) error
	include = func(name InternedString) error {
		if _, done := sub.tasks[name]; done {
			return nil
		}
		task, ok := g.tasks[name]
		if !ok {
			return zerr.With(ErrTaskNotFound, "task_name", name.String())
		}
		if err := sub.AddTask(&task); err != nil {
			return err
		}
		for _, dep := range task.Dependencies {
			if err := include(dep); err != nil {
				return err
			}
		}
		return nil
	}

	for _, target := range targets {
		if err := include(NewInternedString(target)); err != nil {
			return nil, err
		}
	}
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	return sub, nil
}
