package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sqweek/dialog"
)

// fileFilter describes one save dialog filter.
type fileFilter struct {
	desc  string
	ext   string
	title string
}

var (
	collisionFilter = fileFilter{desc: "Collision Mesh", ext: "cmsh", title: "Save Collision Mesh"}
	sceneFilter     = fileFilter{desc: "Scene", ext: "scne", title: "Save Scene"}
)

// pickFile is replaced in tests.
var pickFile = func(f fileFilter, startDir string) (string, error) {
	b := dialog.File().
		Filter(f.desc, f.ext).
		Filter("All Files", "*").
		Title(f.title)
	if startDir != "" {
		b = b.SetStartDir(startDir)
	}
	return b.Save()
}

// outputPath returns the output file from the positional arguments, or asks
// with a save dialog when none was given or --pick is set. ok is false when
// the user cancelled the dialog.
func outputPath(args []string, startDir string, f fileFilter) (string, bool, error) {
	if len(args) >= 2 && !globalFlags.Pick {
		return args[1], true, nil
	}

	path, err := pickFile(f, startDir)
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			fmt.Fprintln(os.Stderr, "Export cancelled.")
			return "", false, nil
		}
		return "", false, fmt.Errorf("file dialog: %w", err)
	}
	return path, true, nil
}
