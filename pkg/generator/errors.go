package generator

import (
	"errors"
	"fmt"
	"slices"
)

// ErrorCode classifies generator failures.
type ErrorCode int

const (
	// ErrorCodeUnknown wraps any underlying I/O or parse failure.
	ErrorCodeUnknown ErrorCode = iota
	// ErrorCodeUnableToCreateTestDirectory means the test directory could not be created.
	ErrorCodeUnableToCreateTestDirectory
	// ErrorCodeTestFileAlreadyExists means the test file exists and was not overwritten.
	ErrorCodeTestFileAlreadyExists
)

func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeUnableToCreateTestDirectory:
		return "unable to create test directory"
	case ErrorCodeTestFileAlreadyExists:
		return "test file already exists"
	default:
		return "unknown"
	}
}

// bypassErrorCodes are user-recoverable: callers abort silently on them.
var bypassErrorCodes = []ErrorCode{ErrorCodeTestFileAlreadyExists}

// ErrTestFileExists is the cause of every ErrorCodeTestFileAlreadyExists error.
var ErrTestFileExists = errors.New("generator: test file already exists")

// GeneratorError is returned by every step of the generate pipeline.
type GeneratorError struct {
	Code    ErrorCode
	Message string
	// Path is the file or directory the step was working on.
	Path string
	Err  error
}

// Error implements the error interface.
func (e *GeneratorError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Code.String()
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *GeneratorError) Unwrap() error {
	return e.Err
}

// IsBypassed reports whether err carries a code the caller should not report.
func IsBypassed(err error) bool {
	var genErr *GeneratorError
	if !errors.As(err, &genErr) {
		return false
	}
	return slices.Contains(bypassErrorCodes, genErr.Code)
}

// CodeOf returns the code of the GeneratorError in err's chain, or
// ErrorCodeUnknown.
func CodeOf(err error) ErrorCode {
	var genErr *GeneratorError
	if errors.As(err, &genErr) {
		return genErr.Code
	}
	return ErrorCodeUnknown
}

func newError(code ErrorCode, message, path string, err error) *GeneratorError {
	return &GeneratorError{Code: code, Message: message, Path: path, Err: err}
}
