package scheduler

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownDependency = errors.New("unknown dependency")
	ErrCyclicDependency  = errors.New("cyclic dependency")
	ErrDuplicateTask     = errors.New("duplicate task name")
)

// UnknownDependencyError reports an after: reference to a task that does not exist.
type UnknownDependencyError struct {
	Task    string
	Missing string
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("%s: task %q depends on %q, which is not in the plan", ErrUnknownDependency, e.Task, e.Missing)
}

func (e *UnknownDependencyError) Unwrap() error { return ErrUnknownDependency }

// CyclicDependencyError carries one cycle witness, rotated to start at its
// lexicographically smallest name.
type CyclicDependencyError struct {
	Cycle []string
}

func (e *CyclicDependencyError) Error() string {
	if len(e.Cycle) == 0 {
		return ErrCyclicDependency.Error()
	}
	path := append(append([]string(nil), e.Cycle...), e.Cycle[0])
	return fmt.Sprintf("%s: %s", ErrCyclicDependency, strings.Join(path, " -> "))
}

func (e *CyclicDependencyError) Unwrap() error { return ErrCyclicDependency }

// DuplicateTaskError reports a task name declared more than once.
type DuplicateTaskError struct {
	Name   string
	Blocks []string
}

func (e *DuplicateTaskError) Error() string {
	return fmt.Sprintf("%s: %q declared in blocks %s", ErrDuplicateTask, e.Name, strings.Join(e.Blocks, ", "))
}

func (e *DuplicateTaskError) Unwrap() error { return ErrDuplicateTask }
