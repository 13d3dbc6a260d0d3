package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_UnwrapsToKind(t *testing.T) {
	err := fmt.Errorf("delete: %w", Forbidden(MsgDeleteSuperadmin))

	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden in chain")
	}
	if errors.Is(err, ErrValidation) {
		t.Fatalf("unexpected ErrValidation in chain")
	}
	if got := Message(err); got != MsgDeleteSuperadmin {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestMessage_PlainError(t *testing.T) {
	if got := Message(errors.New("boom")); got != "boom" {
		t.Fatalf("unexpected message %q", got)
	}
}
