package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// deriveOutputPath converts an input document path to an output path
// with the given suffix. Example: ("resume.txt", "_parsed.json") ->
// "resume_parsed.json".
func deriveOutputPath(inputPath, suffix string) string {
	base := filepath.Base(inputPath)
	if base == stdinPath {
		base = "resume"
	}
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + suffix
}

// writeFileAtomic writes content to path atomically.
// It fails if the file already exists (O_EXCL), preventing accidental overwrites.
// On write failure, the partial file is removed.
func writeFileAtomic(path, content string) error {
	// #nosec G302 G304 -- user-specified output file with standard permissions
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("output file already exists: %s: %w", path, ErrOutputExists)
		}
		return fmt.Errorf("cannot create output file: %w", err)
	}

	writeErr := func() error {
		defer func() { _ = f.Close() }()
		if _, err := f.WriteString(content); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}()

	if writeErr != nil {
		_ = os.Remove(path)
		return writeErr
	}

	return nil
}
