// Package errs defines the error taxonomy shared by every stage of the
// analytics pipeline. All three kinds are fatal for the current run: the
// binaries report the message on stderr and exit non-zero without emitting
// a result payload.
//
//   - DataError: malformed or unparseable input records, or a record missing
//     its required identifier. Raised before any computation starts.
//   - ConfigError: a configuration that cannot drive a run, such as a feature
//     list that resolves to nothing or a cluster count larger than the
//     customer population. Raised before fitting.
//   - FitError: a numeric fitting failure on otherwise well-formed input.
package errs

import (
	"errors"
	"fmt"
)

// DataError reports malformed or structurally invalid input data.
type DataError struct {
	Msg string
	Err error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data error: %s: %v", e.Msg, e.Err)
	}
	return "data error: " + e.Msg
}

func (e *DataError) Unwrap() error { return e.Err }

// Dataf builds a DataError from a format string.
func Dataf(format string, args ...interface{}) *DataError {
	return &DataError{Msg: fmt.Sprintf(format, args...)}
}

// DataWrap builds a DataError around an underlying decode or parse failure.
func DataWrap(err error, format string, args ...interface{}) *DataError {
	return &DataError{Msg: fmt.Sprintf(format, args...), Err: err}
}

// ConfigError reports configuration that cannot drive a run.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return "config error: " + e.Msg }

// Configf builds a ConfigError from a format string.
func Configf(format string, args ...interface{}) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// FitError reports a numeric fitting failure.
type FitError struct {
	Msg string
}

func (e *FitError) Error() string { return "fit error: " + e.Msg }

// Fitf builds a FitError from a format string.
func Fitf(format string, args ...interface{}) *FitError {
	return &FitError{Msg: fmt.Sprintf(format, args...)}
}

// ExitCode maps an error to the process exit status the binaries use:
// 1 for data errors and anything unclassified, 2 for configuration errors,
// 3 for fitting failures.
func ExitCode(err error) int {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return 2
	}
	var fe *FitError
	if errors.As(err, &fe) {
		return 3
	}
	return 1
}
