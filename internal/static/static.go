// Package static embeds static files into the binary and copies them to the
// filesystem
package static

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/srworkflow/workflow/internal/osutil"
)

const (
	filesDir = "files"
	iconFile = "workflow.svg"
)

//go:embed files/*
var embeddedFiles embed.FS

// Install copies the embedded files into dir, leaving files that already
// exist untouched, and returns the path of the notification icon.
func Install(dir string) (string, error) {
	err := fs.WalkDir(
		embeddedFiles,
		filesDir,
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			destPath := filepath.Join(dir, strings.TrimPrefix(path, filesDir+"/"))

			_, err = os.Stat(destPath)
			if err == nil || !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			b, err := embeddedFiles.ReadFile(path)
			if err != nil {
				return err
			}

			err = os.MkdirAll(filepath.Dir(destPath), osutil.DirPermission)
			if err != nil {
				return err
			}

			return os.WriteFile(destPath, b, osutil.FilePermission)
		},
	)
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, iconFile), nil
}
