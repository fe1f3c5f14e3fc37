package render

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// DirSink writes each generated target into a directory, one file per
// target, named by the snake-cased target name.
type DirSink struct {
	Dir string
}

// Write persists the content under Dir, creating the directory if needed.
func (s DirSink) Write(targetName string, content []byte) error {
	err := os.MkdirAll(s.Dir, dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	outputPath := filepath.Join(s.Dir, Filename(targetName))

	err = os.WriteFile(outputPath, content, filePerm)
	if err != nil {
		return fmt.Errorf("writing file %s: %w", Filename(targetName), err)
	}

	return nil
}

// WriteDebug persists unformatted output for a failed target to a sidecar
// file next to the intended output. It stays a .go file so editors can
// syntax highlight, but never collides with real output.
func (s DirSink) WriteDebug(targetName string, content []byte) error {
	err := os.MkdirAll(s.Dir, dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	debugName := snakeCase(targetName) + ".unformatted.go"

	err = os.WriteFile(filepath.Join(s.Dir, debugName), content, filePerm)
	if err != nil {
		return fmt.Errorf("writing debug file %s: %w", debugName, err)
	}

	return nil
}
