package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// stdinPath is the conventional path meaning "read from stdin".
const stdinPath = "-"

// readDocument reads a text document from path, or from env.Stdin when
// path is "-". The content is returned with surrounding whitespace
// trimmed; blank documents are rejected with ErrEmptyInput.
func readDocument(env *Env, path string) (string, error) {
	var (
		data []byte
		err  error
	)

	if path == stdinPath {
		data, err = io.ReadAll(env.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
	} else {
		if _, statErr := os.Stat(path); statErr != nil {
			if os.IsNotExist(statErr) {
				return "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}
			return "", fmt.Errorf("cannot access input file: %w", statErr)
		}
		// #nosec G304 -- user-specified input file
		data, err = os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
	}

	content := strings.TrimSpace(string(data))
	if content == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyInput, path)
	}
	return content, nil
}
