package aioconf

import (
	"errors"
	"fmt"
)

// ErrNoSpec is returned by the Builder when neither a spec nor a spec file
// was provided.
var ErrNoSpec = errors.New("no configuration spec provided")

// ErrINIDepth is returned when a resolved tree nested more than one section
// level is written to INI, which has no native multi-level nesting.
var ErrINIDepth = errors.New("ini output supports only one level of nesting")

// DuplicateOptionError indicates that two entries share a name at the same
// spec level. Detected by Validate; fatal before resolution.
type DuplicateOptionError struct {
	Path string
}

func (e *DuplicateOptionError) Error() string {
	return fmt.Sprintf("duplicate option %q", e.Path)
}

// MissingDefaultError indicates that a required option has no default value.
// Detected by Validate; fatal before resolution.
type MissingDefaultError struct {
	Path string
}

func (e *MissingDefaultError) Error() string {
	return fmt.Sprintf("required option %q has no default", e.Path)
}

// InvalidValueError indicates that a source supplied a value that cannot be
// coerced to the option's declared kind. It always propagates; falling back
// to the default would mask operator error.
type InvalidValueError struct {
	Path string
	Raw  string
	Kind Kind
	Err  error
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s value %q for option %q: %v", e.Kind, e.Raw, e.Path, e.Err)
}

func (e *InvalidValueError) Unwrap() error {
	return e.Err
}

// FileFormatError indicates that a config file with a recognized extension
// has malformed content. A missing file is not an error; a broken one is.
type FileFormatError struct {
	Path   string
	Format string
	Err    error
}

func (e *FileFormatError) Error() string {
	return fmt.Sprintf("malformed %s config file %q: %v", e.Format, e.Path, e.Err)
}

func (e *FileFormatError) Unwrap() error {
	return e.Err
}
