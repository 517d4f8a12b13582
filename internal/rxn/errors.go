package rxn

import (
	"errors"
	"fmt"
)

var (
	// ErrModel marks a model-authoring error: the input describes something
	// the compiler refuses to build.
	ErrModel = errors.New("model error")
	// ErrInternal marks a compiler defect: an unhandled case was reached.
	ErrInternal = errors.New("internal error")
	// ErrAllocation marks a failure to allocate runtime tables.
	ErrAllocation = errors.New("allocation failure")
)

// CompileError is a fatal compile condition. Kind is one of ErrModel,
// ErrInternal or ErrAllocation and is matched with errors.Is.
type CompileError struct {
	Kind     error
	Reaction string
	Msg      string
}

func (e *CompileError) Error() string {
	if e.Reaction == "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%v: reaction %s: %s", e.Kind, e.Reaction, e.Msg)
}

func (e *CompileError) Unwrap() error { return e.Kind }

func modelErrorf(reaction, format string, v ...any) error {
	return &CompileError{Kind: ErrModel, Reaction: reaction, Msg: fmt.Sprintf(format, v...)}
}

func allocationErrorf(format string, v ...any) error {
	return &CompileError{Kind: ErrAllocation, Msg: fmt.Sprintf(format, v...)}
}

func internalErrorf(reaction, format string, v ...any) error {
	return &CompileError{Kind: ErrInternal, Reaction: reaction, Msg: fmt.Sprintf(format, v...)}
}

// DuplicatePathwayError reports two pathways of one reaction that cannot be
// told apart by products or orientations.
type DuplicatePathwayError struct {
	Reaction string
	First    string
	Second   string
}

func (e *DuplicatePathwayError) Error() string {
	return fmt.Sprintf("%v: reaction %s: duplicate pathways %q and %q", ErrModel, e.Reaction, e.First, e.Second)
}

func (e *DuplicatePathwayError) Unwrap() error { return ErrModel }
