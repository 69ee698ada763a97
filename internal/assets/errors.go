package assets

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("asset not found")
	ErrMalformed        = errors.New("malformed mesh")
	ErrMaterialMismatch = errors.New("inconsistent material reference")
	ErrTextureDecode    = errors.New("texture decode failed")
)

// LoadError locates a load failure. Kind is one of the Err* sentinels and is
// matched by errors.Is.
type LoadError struct {
	Path string
	Line int
	Kind error
	Err  error
}

func (e *LoadError) Error() string {
	msg := e.Kind.Error()
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, msg)
	}
	return fmt.Sprintf("%s: %s", e.Path, msg)
}

func (e *LoadError) Is(target error) bool {
	return target == e.Kind
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func malformed(path string, line int, format string, args ...any) error {
	return &LoadError{Path: path, Line: line, Kind: ErrMalformed, Err: fmt.Errorf(format, args...)}
}
