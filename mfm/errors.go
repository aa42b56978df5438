package mfm

import (
	"errors"
	"fmt"
)

// DecodeError describes a problem with a serialized tree passed to [Decode] or [DecodeJSON].
type DecodeError struct {
	Issue Issue  // Issue is the kind of the problem.
	Path  string // Path locates the offending node, e.g. "[0].children[2]".
	Err   error  // Err contains the details.
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Issue, e.Err)
	}
	return fmt.Sprintf("%s at %s: %v", e.Issue, e.Path, e.Err)
}

// NewDecodeError is a factory function for creating a *DecodeError.
func NewDecodeError(issue Issue, path string, err error) *DecodeError {
	return &DecodeError{
		Issue: issue,
		Path:  path,
		Err:   err,
	}
}

// InvariantError is the panic value raised when a broken invariant is detected, e.g. a node type
// outside of the closed set. It never escapes for trees built by this package.
type InvariantError struct {
	Issue Issue
	Err   error
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("mfm invariant violated (%s): %v", e.Issue, e.Err)
}

func unexpectedNode(n any) *InvariantError {
	return &InvariantError{
		Issue: IssueUnexpectedNode,
		Err:   fmt.Errorf("unexpected node %T", n),
	}
}

func newMissingPropsError(path string, t NodeType) error {
	return NewDecodeError(IssueMissingProps, path, fmt.Errorf("node %q requires props", t))
}

func newMissingFieldError(path string, t NodeType, field string) error {
	return NewDecodeError(IssueMissingField, path, fmt.Errorf("node %q requires a non-empty %q prop", t, field))
}

func newMissingChildrenError(path string, t NodeType) error {
	return NewDecodeError(IssueMissingChildren, path, fmt.Errorf("node %q requires at least one child", t))
}

func newUnexpectedChildrenError(path string, t NodeType) error {
	return NewDecodeError(IssueUnexpectedChildren, path, fmt.Errorf("node %q can't have children", t))
}

var errPlainShape = errors.New("plain requires exactly one text child")
