package platform

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// NotFoundError indicates an executable could not be located.
type NotFoundError struct {
	Name          string
	SearchedPaths []string
	Err           error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("executable %q not found in: %v", e.Name, e.SearchedPaths)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// LookPath resolves name the way execvp does: a name containing a path
// separator is used as is, anything else is searched in $PATH.
func LookPath(log *slog.Logger, name string) (string, error) {
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		log.Debug("Using explicit executable path", "path", name)

		info, err := os.Stat(name)
		if err != nil {
			return "", &NotFoundError{Name: name, SearchedPaths: []string{name}, Err: err}
		}

		if info.IsDir() {
			return "", &NotFoundError{Name: name, SearchedPaths: []string{name}, Err: fmt.Errorf("%s is a directory", name)}
		}

		return name, nil
	}

	log.Debug("Searching for executable in PATH", "name", name)

	path, err := exec.LookPath(name)
	if err != nil {
		return "", &NotFoundError{Name: name, SearchedPaths: []string{"$PATH"}, Err: err}
	}

	log.Debug("Found executable in PATH", "path", path)

	return path, nil
}
