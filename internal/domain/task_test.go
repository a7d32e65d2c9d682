package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseTaskStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    TaskStatus
		wantErr bool
	}{
		{in: "", want: StatusActive},
		{in: "ACT", want: StatusActive},
		{in: "active", want: StatusActive},
		{in: "HOL", want: StatusOnHold},
		{in: "on_hold", want: StatusOnHold},
		{in: "COM", want: StatusCompleted},
		{in: " Completed ", want: StatusCompleted},
		{in: "AC", wantErr: true},
		{in: "DONE", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseTaskStatus(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrValidation) {
				t.Errorf("ParseTaskStatus(%q) error = %v, want ErrValidation", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTaskStatus(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTaskStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeDescription(t *testing.T) {
	if _, err := NormalizeDescription("   "); !errors.Is(err, ErrValidation) {
		t.Errorf("blank description error = %v, want ErrValidation", err)
	}

	exact := strings.Repeat("я", MaxDescriptionLength)
	got, err := NormalizeDescription(exact)
	if err != nil {
		t.Fatalf("120 runes error = %v", err)
	}
	if got != exact {
		t.Errorf("description changed: %q", got)
	}

	if _, err := NormalizeDescription(exact + "!"); !errors.Is(err, ErrValidation) {
		t.Errorf("121 runes error = %v, want ErrValidation", err)
	}

	if _, err := NormalizeDescription("buy\x00milk"); !errors.Is(err, ErrValidation) {
		t.Errorf("NUL description error = %v, want ErrValidation", err)
	}

	got, _ = NormalizeDescription("  buy milk ")
	if got != "buy milk" {
		t.Errorf("NormalizeDescription trimmed = %q, want %q", got, "buy milk")
	}
}

func TestParseDueTime(t *testing.T) {
	want := time.Date(2020, 3, 30, 9, 0, 0, 0, time.UTC)

	for _, in := range []string{
		"2020-03-30T09:00:00Z",
		"2020-03-30T11:00:00+02:00",
		"2020-03-30T09:00:00",
		"2020-03-30 09:00:00",
		"2020-03-30T09:00",
	} {
		got, err := ParseDueTime(in)
		if err != nil {
			t.Errorf("ParseDueTime(%q) error = %v", in, err)
			continue
		}
		if got == nil || !got.Equal(want) || got.Location() != time.UTC {
			t.Errorf("ParseDueTime(%q) = %v, want %v", in, got, want)
		}
	}

	got, err := ParseDueTime("")
	if err != nil || got != nil {
		t.Errorf("ParseDueTime(\"\") = %v, %v; want nil, nil", got, err)
	}

	if _, err := ParseDueTime("next tuesday"); !errors.Is(err, ErrValidation) {
		t.Errorf("ParseDueTime(garbage) error = %v, want ErrValidation", err)
	}
}

func TestNormalizeUsername(t *testing.T) {
	if _, err := NormalizeUsername(""); !errors.Is(err, ErrValidation) {
		t.Errorf("empty username error = %v, want ErrValidation", err)
	}
	if _, err := NormalizeUsername(strings.Repeat("a", MaxUsernameLength+1)); !errors.Is(err, ErrValidation) {
		t.Errorf("long username error = %v, want ErrValidation", err)
	}
	if _, err := NormalizeUsername("al\x00ice"); !errors.Is(err, ErrValidation) {
		t.Errorf("NUL username error = %v, want ErrValidation", err)
	}
	got, err := NormalizeUsername(" alice ")
	if err != nil || got != "alice" {
		t.Errorf("NormalizeUsername = %q, %v; want alice, nil", got, err)
	}
	if err := ValidatePassword(""); !errors.Is(err, ErrValidation) {
		t.Errorf("ValidatePassword(\"\") = %v, want ErrValidation", err)
	}
}
