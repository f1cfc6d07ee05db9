// Package upload gathers local image files for the upload endpoint.
package upload

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"photogrip/internal/api"
)

// ErrNoImages is returned when the given paths hold no image files
var ErrNoImages = errors.New("no image files found")

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".heic": true,
	".heif": true,
}

// IsImage reports whether name has an image extension
func IsImage(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}

// SplitPaths splits the text typed into the upload prompt. Paths are
// separated by commas or newlines; a leading ~ expands to the home directory.
func SplitPaths(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool { return r == ',' || r == '\n' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(strings.TrimSpace(f), `"'`)
		if f == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(f, "~"); ok {
			if home, err := os.UserHomeDir(); err == nil {
				f = filepath.Join(home, rest)
			}
		}
		out = append(out, f)
	}
	return out
}

// Collect reads every image named by paths. Directories are walked and their
// images added in lexical order; explicitly named files are read whatever
// their extension.
func Collect(paths []string) ([]api.UploadFile, error) {
	var names []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if !info.IsDir() {
			names = append(names, p)
			continue
		}
		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && IsImage(d.Name()) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", p, err)
		}
		sort.Strings(found)
		names = append(names, found...)
	}
	if len(names) == 0 {
		return nil, ErrNoImages
	}

	files := make([]api.UploadFile, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		files = append(files, api.UploadFile{Name: filepath.Base(name), Data: data})
	}
	return files, nil
}
