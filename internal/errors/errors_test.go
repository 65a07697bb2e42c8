package errors

import (
	"fmt"
	"testing"
)

func TestBlogError_Error(t *testing.T) {
	err := &BlogError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "post not found",
	}

	expected := "NOT_FOUND: post not found"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewInvalidRequest(t *testing.T) {
	err := NewInvalidRequest("username and password required")

	if err.Code != ErrInvalidRequest {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidRequest)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Message != "username and password required" {
		t.Errorf("Message = %q, want %q", err.Message, "username and password required")
	}
}

func TestNewUnauthorized(t *testing.T) {
	err := NewUnauthorized("invalid credentials")

	if err.Code != ErrUnauthorized {
		t.Errorf("Code = %q, want %q", err.Code, ErrUnauthorized)
	}
	if err.Status != 401 {
		t.Errorf("Status = %d, want 401", err.Status)
	}
}

func TestNewForbidden(t *testing.T) {
	err := NewForbidden("invalid or expired token")

	if err.Code != ErrForbidden {
		t.Errorf("Code = %q, want %q", err.Code, ErrForbidden)
	}
	if err.Status != 403 {
		t.Errorf("Status = %d, want 403", err.Status)
	}
}

func TestNewPostNotFound(t *testing.T) {
	err := NewPostNotFound("2024-01-15-hello")

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Details["slug"] != "2024-01-15-hello" {
		t.Errorf("Details[slug] = %v, want %q", err.Details["slug"], "2024-01-15-hello")
	}
}

func TestNewInternal(t *testing.T) {
	t.Run("with error", func(t *testing.T) {
		err := NewInternal(fmt.Errorf("disk full"))

		if err.Code != ErrInternal {
			t.Errorf("Code = %q, want %q", err.Code, ErrInternal)
		}
		if err.Status != 500 {
			t.Errorf("Status = %d, want 500", err.Status)
		}
		if err.Message != "an internal error occurred" {
			t.Errorf("Message = %q, want %q", err.Message, "an internal error occurred")
		}
		if err.Details["internal_error"] != "disk full" {
			t.Errorf("Details[internal_error] = %q, want %q", err.Details["internal_error"], "disk full")
		}
	})

	t.Run("with nil", func(t *testing.T) {
		err := NewInternal(nil)

		if err.Details == nil {
			t.Error("Details should not be nil")
		}
		if _, ok := err.Details["internal_error"]; ok {
			t.Error("Details[internal_error] should be absent for nil error")
		}
	})
}

func TestIs(t *testing.T) {
	t.Run("matching code", func(t *testing.T) {
		if !Is(NewNotFound("x"), ErrNotFound) {
			t.Error("Is() = false, want true")
		}
	})

	t.Run("non-matching code", func(t *testing.T) {
		if Is(NewNotFound("x"), ErrForbidden) {
			t.Error("Is() = true, want false")
		}
	})

	t.Run("plain error", func(t *testing.T) {
		if Is(fmt.Errorf("plain error"), ErrNotFound) {
			t.Error("Is() = true, want false for non-BlogError")
		}
	})

	t.Run("wrapped", func(t *testing.T) {
		wrapped := fmt.Errorf("load: %w", NewNotFound("x"))
		if !Is(wrapped, ErrNotFound) {
			t.Error("Is() = false, want true for wrapped BlogError")
		}
	})
}

func TestAs(t *testing.T) {
	orig := NewForbidden("nope")
	if got := As(fmt.Errorf("ctx: %w", orig)); got != orig {
		t.Errorf("As() = %v, want the same error", got)
	}

	got := As(fmt.Errorf("boom"))
	if got.Code != ErrInternal {
		t.Errorf("As(plain).Code = %q, want %q", got.Code, ErrInternal)
	}
}
