package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDeriveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		suffix   string
		expected string
	}{
		{"txt_to_json", "resume.txt", "_parsed.json", "resume_parsed.json"},
		{"md_to_analysis", "cv.md", "_analysis.md", "cv_analysis.md"},
		{"no_extension", "resume", "_parsed.json", "resume_parsed.json"},
		{"path_stripped", "/home/user/resume.txt", "_parsed.json", "resume_parsed.json"},
		{"stdin_placeholder", "-", "_analysis.md", "resume_analysis.md"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := DeriveOutputPath(tt.input, tt.suffix)
			if result != tt.expected {
				t.Errorf("DeriveOutputPath(%q, %q) = %q, want %q", tt.input, tt.suffix, result, tt.expected)
			}
		})
	}
}

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.json")
	if err := WriteFileAtomic(path, "{}\n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if string(data) != "{}\n" {
		t.Errorf("content = %q", data)
	}
}

func TestWriteFileAtomicRefusesOverwrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.json")
	if err := os.WriteFile(path, []byte("original"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	err := WriteFileAtomic(path, "replacement")
	if !errors.Is(err, ErrOutputExists) {
		t.Fatalf("error = %v, want ErrOutputExists", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "original" {
		t.Errorf("existing file was modified: %q", data)
	}
}
