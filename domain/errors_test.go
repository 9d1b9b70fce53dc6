package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestFieldErrors_Add(t *testing.T) {
	fe := FieldErrors{}
	fe.Add("password", "must be at least 8 characters")
	fe.Add("password", "must contain an uppercase letter")
	fe.Add("email", "must be a valid email address")

	if len(fe["password"]) != 2 {
		t.Errorf("expected 2 password messages, got %d", len(fe["password"]))
	}
	if len(fe["email"]) != 1 {
		t.Errorf("expected 1 email message, got %d", len(fe["email"]))
	}
}

func TestFieldErrors_Error(t *testing.T) {
	fe := FieldErrors{}
	fe.Add("password", "must be at least 8 characters")

	msg := fe.Error()
	if !strings.HasPrefix(msg, "validation failed: ") {
		t.Errorf("unexpected prefix: %q", msg)
	}
	if !strings.Contains(msg, "password: must be at least 8 characters") {
		t.Errorf("message should name the field and violation: %q", msg)
	}
}

func TestFieldErrors_ErrorsAs(t *testing.T) {
	fe := FieldErrors{}
	fe.Add("password", "must be at least 8 characters")

	var err error = fe
	var target FieldErrors
	if !errors.As(err, &target) {
		t.Fatal("FieldErrors should be extractable with errors.As")
	}
	if len(target["password"]) != 1 {
		t.Errorf("extracted errors lost content: %v", target)
	}
}
