package errors

import (
	goerrors "errors"
	"fmt"
	"net"
	"testing"
)

type timeoutError struct{}

func (timeoutError) Error() string { return "deadline exceeded" }

func TestClassify(t *testing.T) {
	t.Parallel()

	if got := Classify(nil); got != "" {
		t.Fatalf("Classify(nil) = %q", got)
	}

	if got := Classify(goerrors.New("plain")); got != "errors_errorstring" {
		t.Fatalf("Classify(errors.New) = %q", got)
	}

	wrapped := fmt.Errorf("outer: %w", timeoutError{})
	if got := Classify(wrapped); got != "errors_timeouterror" {
		t.Fatalf("Classify(wrapped) = %q", got)
	}

	opErr := &net.OpError{Op: "dial", Err: goerrors.New("refused")}
	if got := Classify(opErr); got != "errors_errorstring" {
		t.Fatalf("Classify unwraps to innermost, got %q", got)
	}
}
