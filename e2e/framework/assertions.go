//go:build e2e

package framework

import (
	"strings"
	"testing"
)

// AssertSuccess asserts that the command succeeded.
func AssertSuccess(t *testing.T, r *Result) {
	t.Helper()
	if !r.Success() {
		t.Errorf("Expected command to succeed, got exit code %d\nStdout: %s\nStderr: %s",
			r.ExitCode, r.Stdout, r.Stderr)
	}
}

// AssertExitCode asserts the expected exit code.
func AssertExitCode(t *testing.T, r *Result, expected int) {
	t.Helper()
	if r.ExitCode != expected {
		t.Errorf("Expected exit code %d, got %d\nStdout: %s\nStderr: %s",
			expected, r.ExitCode, r.Stdout, r.Stderr)
	}
}

// AssertStdoutContains asserts that stdout contains the expected substring.
func AssertStdoutContains(t *testing.T, r *Result, expected string) {
	t.Helper()
	if !strings.Contains(r.Stdout, expected) {
		t.Errorf("Expected stdout to contain %q, but got:\n%s", expected, r.Stdout)
	}
}

// AssertStdoutNotContains asserts that stdout does not contain the unexpected substring.
func AssertStdoutNotContains(t *testing.T, r *Result, unexpected string) {
	t.Helper()
	if strings.Contains(r.Stdout, unexpected) {
		t.Errorf("Expected stdout to NOT contain %q, but got:\n%s", unexpected, r.Stdout)
	}
}

// AssertStderrContains asserts that stderr contains the expected substring.
func AssertStderrContains(t *testing.T, r *Result, expected string) {
	t.Helper()
	if !strings.Contains(r.Stderr, expected) {
		t.Errorf("Expected stderr to contain %q, but got:\n%s", expected, r.Stderr)
	}
}

// AssertFileContains asserts that a file in the work directory contains
// the expected content.
func AssertFileContains(t *testing.T, env *Environment, path, expected string) {
	t.Helper()
	if content := env.ReadFile(path); !strings.Contains(content, expected) {
		t.Errorf("Expected file %s to contain %q, but got:\n%s", path, expected, content)
	}
}
