package pipe

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinels for errors.Is. The typed errors below match them.
var (
	ErrInvalidStage                = errors.New("invalid stage")
	ErrNoBuilder                   = errors.New("no template builder")
	ErrMissingSubstitutionArgument = errors.New("missing substitution argument")
)

// InvalidStageError reports a value offered to a pipe that is not a
// placeholder, tuple, string or callable.
type InvalidStageError struct {
	Value any
}

func (e *InvalidStageError) Error() string {
	return fmt.Sprintf("cannot pipe %#v (%T)", e.Value, e.Value)
}

func (e *InvalidStageError) Is(target error) bool {
	return target == ErrInvalidStage
}

// NoBuilderError reports a top-level template that is neither a sequence
// nor a mapping.
type NoBuilderError struct {
	Type string
}

func (e *NoBuilderError) Error() string {
	return fmt.Sprintf("don't know how to build %s", e.Type)
}

func (e *NoBuilderError) Is(target error) bool {
	return target == ErrNoBuilder
}

// MissingSubstitutionArgumentError is returned when a partial application
// holding placeholders is called without a positional argument to
// substitute.
type MissingSubstitutionArgumentError struct {
	Target string
}

func (e *MissingSubstitutionArgumentError) Error() string {
	return fmt.Sprintf("function %q partially applied with an X placeholder but called with no positional arguments", e.Target)
}

func (e *MissingSubstitutionArgumentError) Is(target error) bool {
	return target == ErrMissingSubstitutionArgument
}

// PipeError annotates an error with the name of the pipe it passed
// through. Nested annotated pipes stack one "in" line per level.
type PipeError struct {
	Name    string
	StageID uuid.UUID
	Err     error
}

func (e *PipeError) Error() string {
	return fmt.Sprintf("%v\n  in %s", e.Err, e.Name)
}

func (e *PipeError) Unwrap() error {
	return e.Err
}
