package main

import (
	"bytes"
	"strings"
	"testing"
)

// runCodes executes the codes command with the given arguments and returns
// its output.
func runCodes(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cmd := NewCodesCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	return buf.String(), err
}

// TestCodesCmd tests taxonomy listing.
func TestCodesCmd(t *testing.T) {
	t.Parallel()

	t.Run("lists the whole taxonomy", func(t *testing.T) {
		t.Parallel()
		out, err := runCodes(t)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"restaurant", "5812", "clothing_store", "place types across"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})

	t.Run("filters by category", func(t *testing.T) {
		t.Parallel()
		out, err := runCodes(t, "--category", "Retail")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "clothing_store") {
			t.Error("output missing clothing_store")
		}
		if strings.Contains(out, "restaurant") {
			t.Error("retail listing should not include restaurant")
		}
	})

	t.Run("unknown category is an error", func(t *testing.T) {
		t.Parallel()
		if _, err := runCodes(t, "--category", "Groceries"); err == nil {
			t.Error("expected an error for an unknown category")
		}
	})

	t.Run("validates a known code", func(t *testing.T) {
		t.Parallel()
		out, err := runCodes(t, "--validate", "5812")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "5812 is a valid MCC") {
			t.Errorf("unexpected output: %q", out)
		}
	})

	t.Run("rejects an unknown code", func(t *testing.T) {
		t.Parallel()
		if _, err := runCodes(t, "--validate", "0000"); err == nil {
			t.Error("expected an error for an unknown code")
		}
	})
}
