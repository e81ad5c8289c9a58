// Package errors provides structured error types for reelfx operations.
package errors

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// KindIO represents I/O errors.
	KindIO ErrorKind = iota
	// KindInput represents a missing or unusable input file.
	KindInput
	// KindTool represents a non-zero exit from the external tool.
	KindTool
	// KindRelocation represents a failure to move a finished file to its destination.
	KindRelocation
	// KindTimeout represents an operation that exceeded its wall-clock bound.
	KindTimeout
	// KindCancelled represents user-cancelled operations.
	KindCancelled
	// KindDownload represents remote fetch failures.
	KindDownload
	// KindConfig represents configuration validation errors.
	KindConfig
	// KindNoFilesFound represents no suitable video files found.
	KindNoFilesFound
)

// String returns a string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "I/O error"
	case KindInput:
		return "Input error"
	case KindTool:
		return "Tool error"
	case KindRelocation:
		return "Relocation error"
	case KindTimeout:
		return "Timed out"
	case KindCancelled:
		return "Operation cancelled"
	case KindDownload:
		return "Download error"
	case KindConfig:
		return "Configuration error"
	case KindNoFilesFound:
		return "No files found"
	default:
		return "Unknown error"
	}
}

// CommandErrorKind represents the type of command error.
type CommandErrorKind int

const (
	// CommandStart means the command failed to start.
	CommandStart CommandErrorKind = iota
	// CommandWait means waiting for the command failed.
	CommandWait
	// CommandFailed means the command returned non-zero exit status.
	CommandFailed
)

// CommandError represents an error from executing an external command.
type CommandError struct {
	Command    string
	Kind       CommandErrorKind
	ExitCode   int
	Stderr     string
	Underlying error
}

func (e *CommandError) Error() string {
	switch e.Kind {
	case CommandStart:
		return fmt.Sprintf("failed to execute %s: %v", e.Command, e.Underlying)
	case CommandWait:
		return fmt.Sprintf("failed to wait for %s: %v", e.Command, e.Underlying)
	case CommandFailed:
		if e.Stderr != "" {
			return fmt.Sprintf("command %s failed with exit code %d: %s", e.Command, e.ExitCode, e.Stderr)
		}
		return fmt.Sprintf("command %s failed with exit code %d", e.Command, e.ExitCode)
	default:
		return fmt.Sprintf("command %s error: %v", e.Command, e.Underlying)
	}
}

func (e *CommandError) Unwrap() error {
	return e.Underlying
}

// CoreError is the main error type for reelfx operations.
type CoreError struct {
	Kind       ErrorKind
	Message    string
	Underlying error
}

func (e *CoreError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *CoreError) Unwrap() error {
	return e.Underlying
}

// Is reports whether target matches this error's kind.
func (e *CoreError) Is(target error) bool {
	t, ok := target.(*CoreError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewIOError creates a new I/O error.
func NewIOError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindIO, Message: message, Underlying: underlying}
}

// NewInputError creates an error for a missing or unreadable input.
func NewInputError(path string) *CoreError {
	return &CoreError{Kind: KindInput, Message: fmt.Sprintf("input file not found: %s", path)}
}

// NewToolError creates an error for a failed external tool run.
func NewToolError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindTool, Message: message, Underlying: underlying}
}

// NewCommandError creates a new command execution error.
func NewCommandError(cmd string, kind CommandErrorKind, underlying error) *CoreError {
	cmdErr := &CommandError{
		Command:    cmd,
		Kind:       kind,
		Underlying: underlying,
	}
	return &CoreError{Kind: KindTool, Message: cmdErr.Error(), Underlying: cmdErr}
}

// NewCommandStartError creates an error for when a command fails to start.
func NewCommandStartError(cmd string, err error) *CoreError {
	return NewCommandError(cmd, CommandStart, err)
}

// NewCommandFailedError creates an error for when a command returns non-zero exit status.
func NewCommandFailedError(cmd string, exitCode int, stderr string) *CoreError {
	cmdErr := &CommandError{
		Command:  cmd,
		Kind:     CommandFailed,
		ExitCode: exitCode,
		Stderr:   stderr,
	}
	return &CoreError{Kind: KindTool, Message: fmt.Sprintf("%s exited with code %d", cmd, exitCode), Underlying: cmdErr}
}

// NewRelocationError creates an error for a failed move to the destination.
func NewRelocationError(dest string, underlying error) *CoreError {
	return &CoreError{Kind: KindRelocation, Message: fmt.Sprintf("failed to save %s", dest), Underlying: underlying}
}

// NewTimeoutError creates an error for an operation that ran past its deadline.
func NewTimeoutError(operation string, underlying error) *CoreError {
	return &CoreError{Kind: KindTimeout, Message: operation, Underlying: underlying}
}

// NewDownloadError creates a new remote fetch error.
func NewDownloadError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindDownload, Message: message, Underlying: underlying}
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string) *CoreError {
	return &CoreError{Kind: KindConfig, Message: message}
}

// NewNoFilesFoundError creates an error for when no video files are found.
func NewNoFilesFoundError(dir string) *CoreError {
	return &CoreError{Kind: KindNoFilesFound, Message: fmt.Sprintf("no suitable video files found in %s", dir)}
}

// NewCancelledError creates an error for user-cancelled operations.
func NewCancelledError() *CoreError {
	return &CoreError{Kind: KindCancelled, Message: "processing stopped by user"}
}

// IsKind checks if the error has the specified kind.
func IsKind(err error, kind ErrorKind) bool {
	var coreErr *CoreError
	if errors.As(err, &coreErr) {
		return coreErr.Kind == kind
	}
	return false
}

// IsCancelled checks if the error is a cancellation error.
func IsCancelled(err error) bool {
	return IsKind(err, KindCancelled)
}

// IsTimeout checks if the error is a timeout, either a KindTimeout error or a
// bare context deadline.
func IsTimeout(err error) bool {
	return IsKind(err, KindTimeout) || errors.Is(err, context.DeadlineExceeded)
}

// IsNoFilesFound checks if the error is a no-files-found error.
func IsNoFilesFound(err error) bool {
	return IsKind(err, KindNoFilesFound)
}

// WrapExecError wraps an exec.ExitError into a CoreError.
func WrapExecError(cmd string, err error, stderr string) *CoreError {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return NewCommandFailedError(cmd, exitErr.ExitCode(), stderr)
	}
	return NewCommandStartError(cmd, err)
}
