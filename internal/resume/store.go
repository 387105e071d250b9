package resume

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store sentinel errors.
var (
	// ErrNotFound indicates the named resume does not exist in the store.
	ErrNotFound = errors.New("resume not found")

	// ErrInvalidName indicates a resume name containing path separators
	// or other disallowed characters.
	ErrInvalidName = errors.New("invalid resume name")
)

// storableExtensions are the file extensions the store recognizes.
var storableExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// Store keeps raw resume text files in a single directory so they can be
// reused across parse and match runs without re-pasting.
type Store struct {
	dir string
}

// DefaultDir returns the default resume storage directory.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share/jobalign/resumes.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "jobalign", "resumes"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "jobalign", "resumes"), nil
}

// OpenStore opens (creating if needed) a resume store rooted at dir.
func OpenStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("store directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0750); err != nil { // #nosec G301 -- user data dir
		return nil, fmt.Errorf("cannot create resume directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// validateName rejects names that would escape the store directory or
// carry an unsupported extension. Names without an extension get .txt.
func validateName(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return "", fmt.Errorf("%q: %w", name, ErrInvalidName)
	}

	ext := filepath.Ext(name)
	if ext == "" {
		return name + ".txt", nil
	}
	if !storableExtensions[strings.ToLower(ext)] {
		return "", fmt.Errorf("%q: unsupported extension %s: %w", name, ext, ErrInvalidName)
	}
	return name, nil
}

// Save writes resume text under name and returns the full path.
// Existing files are overwritten: saving an updated copy of the same
// resume is the common case.
func (s *Store) Save(name, text string) (string, error) {
	name, err := validateName(name)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("resume content cannot be empty")
	}

	path := filepath.Join(s.dir, name)
	// #nosec G306 -- resume text is user data, standard permissions
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("cannot save resume: %w", err)
	}
	return path, nil
}

// Load returns the text of the named resume.
func (s *Store) Load(name string) (string, error) {
	name, err := validateName(name)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name)) // #nosec G304 -- name validated above
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%q: %w", name, ErrNotFound)
		}
		return "", fmt.Errorf("cannot read resume: %w", err)
	}
	return string(data), nil
}

// List returns the names of all stored resumes, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("cannot list resumes: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if storableExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
