package dsl

import "fmt"

// LifecycleError is the panic value raised when a scope is configured after
// it was built, or when a single-use scope is built twice.
type LifecycleError struct {
	Scope string
	ID    string
	Op    string
}

func (e *LifecycleError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("dsl: %s scope: %s called after Build", e.Scope, e.Op)
	}
	return fmt.Sprintf("dsl: %s scope %q: %s called after Build", e.Scope, e.ID, e.Op)
}

// lifecycle tracks the configure-then-build state of one scope.
type lifecycle struct {
	scope string
	id    string
	built bool
}

func newLifecycle(scope, id string) lifecycle {
	return lifecycle{scope: scope, id: id}
}

func (l *lifecycle) mustBeOpen(op string) {
	if l.built {
		panic(&LifecycleError{Scope: l.scope, ID: l.id, Op: op})
	}
}

// seal ends the lifecycle of a single-use scope.
func (l *lifecycle) seal() {
	l.mustBeOpen("Build")
	l.built = true
}

// freeze ends configuration but keeps Build repeatable.
func (l *lifecycle) freeze() {
	l.built = true
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func run[S any](scope S, init func(S)) S {
	if init != nil {
		init(scope)
	}
	return scope
}

func copyStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
