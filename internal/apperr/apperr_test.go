package apperr_test

import (
	"errors"
	"io"
	"testing"

	"github.com/srworkflow/workflow/internal/apperr"
)

func TestErrorFmtAndWrap(t *testing.T) {
	base := &apperr.Error{Message: "invalid %s rate"}

	err := base.Fmt("hourly").Wrap(io.EOF)

	if got, want := err.Error(), "invalid hourly rate: EOF"; got != want {
		t.Errorf("expected: %q, but got: %q", want, got)
	}

	if !errors.Is(err, io.EOF) {
		t.Error("expected wrapped cause to be reachable with errors.Is")
	}

	if base.Message != "invalid %s rate" {
		t.Errorf("Fmt must not mutate the template, got: %q", base.Message)
	}
}

func TestErrorIsSameTemplate(t *testing.T) {
	base := &apperr.Error{Message: "storage unavailable"}

	if !errors.Is(base.Wrap(io.ErrUnexpectedEOF), base) {
		t.Error("expected wrapped copy to match its template")
	}

	other := &apperr.Error{Message: "something else"}
	if errors.Is(base, other) {
		t.Error("errors with different messages must not match")
	}
}

func TestErrorIsFormattedTemplate(t *testing.T) {
	base := &apperr.Error{Message: "rate %v is negative"}

	if !errors.Is(base.Fmt(-1), base) {
		t.Error("expected formatted copy to match its template")
	}

	if !errors.Is(base.Fmt(-1).Wrap(io.EOF), base.Fmt(-2)) {
		t.Error("expected copies formatted differently to match each other")
	}
}
