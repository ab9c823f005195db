package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodePermissionDenied, "root required")

	var customErr *E
	if !errors.As(err, &customErr) {
		t.Fatal("Error should be of type *E")
	}
	if customErr.Code != CodePermissionDenied {
		t.Errorf("Expected code %s, got %s", CodePermissionDenied, customErr.Code)
	}
	if got := err.Error(); got != "PERMISSION_DENIED: root required" {
		t.Errorf("Unexpected message %q", got)
	}
}

func TestWrap(t *testing.T) {
	originalErr := errors.New("disk full")
	wrappedErr := Wrap(CodeInternal, "write pom.xml", originalErr)

	if !errors.Is(wrappedErr, originalErr) {
		t.Error("Wrapped error should unwrap to the original error")
	}
	if got := wrappedErr.Error(); got != "INTERNAL: write pom.xml: disk full" {
		t.Errorf("Unexpected message %q", got)
	}
}

func TestWrapf(t *testing.T) {
	originalErr := errors.New("exit status 1")
	wrappedErr := Wrapf(CodeExternalCommand, "mvn", originalErr, "archetype generation for %s", "demo")

	if CodeOf(wrappedErr) != CodeExternalCommand {
		t.Errorf("Expected code %s, got %s", CodeExternalCommand, CodeOf(wrappedErr))
	}
	if got := wrappedErr.Error(); got != "EXTERNAL_COMMAND: archetype generation for demo: exit status 1" {
		t.Errorf("Unexpected message %q", got)
	}
}

func TestCodeOfThroughFmtWrapping(t *testing.T) {
	inner := New(CodeNotFound, "java missing")
	outer := fmt.Errorf("provision: %w", inner)

	if !IsCode(outer, CodeNotFound) {
		t.Errorf("Expected code %s to survive fmt wrapping", CodeNotFound)
	}
	if CodeOf(errors.New("plain")) != "" {
		t.Error("Plain errors should have no code")
	}
	if CodeOf(nil) != "" {
		t.Error("nil should have no code")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("exit status 2")
	err := Build(CodeExternalCommand).
		WithOp("asadmin deploy").
		WithErr(cause).
		WithMsgf("command %q failed", "asadmin deploy").
		WithDetails("exit_code", 2).
		Err()

	if !IsCode(err, CodeExternalCommand) {
		t.Fatalf("Expected code %s", CodeExternalCommand)
	}
	details := DetailsOf(err)
	if len(details) != 2 || details[0] != "exit_code" || details[1] != 2 {
		t.Errorf("Unexpected details %v", details)
	}
	if !errors.Is(err, cause) {
		t.Error("Builder error should unwrap to its cause")
	}
}
