package practice

import (
	"context"
	"errors"
	"io"
	"testing"
)

func TestAttemptCountsMisses(t *testing.T) {
	out, err := Attempt(context.Background(), TypeString("xya"), 'a')
	if err != nil {
		t.Fatalf("attempt: %v", err)
	}
	if out.Exit || out.Attempts != 3 {
		t.Fatalf("expected Continue(3), got %v", out)
	}
	if out.String() != "Continue(3)" {
		t.Fatalf("unexpected string %q", out.String())
	}
}

func TestAttemptIgnoresNonCharacterKeys(t *testing.T) {
	src := NewScript(OtherKey(), CharKey('x'), OtherKey(), OtherKey(), CharKey('a'))
	out, err := Attempt(context.Background(), src, 'a')
	if err != nil {
		t.Fatalf("attempt: %v", err)
	}
	if out.Attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", out.Attempts)
	}
}

func TestAttemptCancel(t *testing.T) {
	src := NewScript(CharKey('x'), CancelKey(), CharKey('a'))
	out, err := Attempt(context.Background(), src, 'a')
	if err != nil {
		t.Fatalf("attempt: %v", err)
	}
	if !out.Exit {
		t.Fatalf("expected Exit, got %v", out)
	}
	if src.Remaining() != 1 {
		t.Fatalf("expected events after cancel to stay unread, got %d remaining", src.Remaining())
	}
}

func TestAttemptStopsInArrivalOrder(t *testing.T) {
	src := TypeString("aa")
	if _, err := Attempt(context.Background(), src, 'a'); err != nil {
		t.Fatalf("attempt: %v", err)
	}
	if src.Remaining() != 1 {
		t.Fatalf("expected one key left, got %d", src.Remaining())
	}
}

func TestAttemptSourceError(t *testing.T) {
	_, err := Attempt(context.Background(), TypeString("x"), 'a')
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}
