package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		expected string
	}{
		{KindIO, "I/O error"},
		{KindInput, "Input error"},
		{KindTool, "Tool error"},
		{KindRelocation, "Relocation error"},
		{KindTimeout, "Timed out"},
		{KindCancelled, "Operation cancelled"},
		{KindDownload, "Download error"},
		{KindConfig, "Configuration error"},
		{KindNoFilesFound, "No files found"},
		{ErrorKind(99), "Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("ErrorKind.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCoreErrorError(t *testing.T) {
	underlying := errors.New("permission denied")
	err := &CoreError{
		Kind:       KindRelocation,
		Message:    "failed to save /out/a.mp4",
		Underlying: underlying,
	}

	got := err.Error()
	expected := "Relocation error: failed to save /out/a.mp4: permission denied"
	if got != expected {
		t.Errorf("CoreError.Error() = %v, want %v", got, expected)
	}

	err2 := &CoreError{Kind: KindConfig, Message: "bad speed"}
	if got := err2.Error(); got != "Configuration error: bad speed" {
		t.Errorf("CoreError.Error() = %v", got)
	}
}

func TestCoreErrorIs(t *testing.T) {
	err1 := &CoreError{Kind: KindTool, Message: "a"}
	err2 := &CoreError{Kind: KindTool, Message: "b"}
	err3 := &CoreError{Kind: KindInput, Message: "c"}

	if !err1.Is(err2) {
		t.Error("Same kind errors should match")
	}
	if err1.Is(err3) {
		t.Error("Different kind errors should not match")
	}

	wrapped := fmt.Errorf("job: %w", err1)
	if !errors.Is(wrapped, &CoreError{Kind: KindTool}) {
		t.Error("errors.Is should see through wrapping")
	}
}

func TestCommandError(t *testing.T) {
	startErr := &CommandError{
		Command:    "ffmpeg",
		Kind:       CommandStart,
		Underlying: errors.New("not found"),
	}
	if got := startErr.Error(); got != "failed to execute ffmpeg: not found" {
		t.Errorf("CommandStart error = %v", got)
	}

	failedErr := &CommandError{
		Command:  "ffmpeg",
		Kind:     CommandFailed,
		ExitCode: 1,
		Stderr:   "Invalid argument",
	}
	expected := "command ffmpeg failed with exit code 1: Invalid argument"
	if got := failedErr.Error(); got != expected {
		t.Errorf("CommandFailed error = %v, want %v", got, expected)
	}
}

func TestNewCommandFailedError(t *testing.T) {
	err := NewCommandFailedError("ffmpeg", 1, "boom")
	if err.Kind != KindTool {
		t.Errorf("Kind = %v, want KindTool", err.Kind)
	}
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatal("expected CommandError in chain")
	}
	if cmdErr.ExitCode != 1 || cmdErr.Stderr != "boom" {
		t.Errorf("CommandError = %+v", cmdErr)
	}
}

func TestIsTimeout(t *testing.T) {
	if !IsTimeout(NewTimeoutError("preview", context.DeadlineExceeded)) {
		t.Error("KindTimeout should be a timeout")
	}
	if !IsTimeout(fmt.Errorf("run: %w", context.DeadlineExceeded)) {
		t.Error("wrapped deadline should be a timeout")
	}
	if IsTimeout(NewToolError("failed", nil)) {
		t.Error("tool error should not be a timeout")
	}
}

func TestIsCancelled(t *testing.T) {
	if !IsCancelled(NewCancelledError()) {
		t.Error("IsCancelled should be true for cancelled error")
	}
	if IsCancelled(NewInputError("/missing.mp4")) {
		t.Error("IsCancelled should be false for input error")
	}
}

func TestWrapExecErrorNonExit(t *testing.T) {
	err := WrapExecError("ffmpeg", errors.New("exec: not found"), "")
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatal("expected CommandError")
	}
	if cmdErr.Kind != CommandStart {
		t.Errorf("Kind = %v, want CommandStart", cmdErr.Kind)
	}
}
