// Package share provides the share targets used by bulk share: an export
// directory standing in for a native share sheet, and the system clipboard.
package share

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"photogrip/internal/logging"
	"photogrip/internal/ui/services/actions"
)

// ErrClipboardUnavailable is returned when the platform has no clipboard tool
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// CaptionFile is written next to the exported photos
const CaptionFile = "caption.txt"

// DirSharer exports shared photos into a fresh folder under Dir
type DirSharer struct {
	Dir    string
	Logger logging.Logger

	now func() time.Time
}

// NewDirSharer creates a sharer exporting under dir. An empty dir disables it.
func NewDirSharer(dir string, log logging.Logger) *DirSharer {
	if log == nil {
		log = logging.Nop()
	}
	return &DirSharer{Dir: dir, Logger: log.With("component", "share"), now: time.Now}
}

// CanShare reports whether an export directory is configured
func (s *DirSharer) CanShare(files []actions.File) bool {
	return s != nil && strings.TrimSpace(s.Dir) != "" && len(files) > 0
}

// Share writes files and a caption into a timestamped folder
func (s *DirSharer) Share(ctx context.Context, files []actions.File, title, text string) error {
	dest, err := s.target()
	if err != nil {
		return err
	}

	used := make(map[string]int, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := uniqueName(filepath.Base(f.Name), used)
		if err := os.WriteFile(filepath.Join(dest, name), f.Data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}

	caption := title + "\n\n" + text + "\n"
	if err := os.WriteFile(filepath.Join(dest, CaptionFile), []byte(caption), 0o644); err != nil {
		return fmt.Errorf("write caption: %w", err)
	}
	s.Logger.Info("exported photos", "dir", dest, "count", len(files))
	return nil
}

// target creates a fresh export folder
func (s *DirSharer) target() (string, error) {
	base := filepath.Join(s.Dir, "photogrip-"+s.now().Format("20060102-150405"))
	dest := base
	for i := 2; ; i++ {
		err := os.MkdirAll(filepath.Dir(dest), 0o755)
		if err != nil {
			return "", fmt.Errorf("create share dir: %w", err)
		}
		err = os.Mkdir(dest, 0o755)
		if err == nil {
			return dest, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("create share dir: %w", err)
		}
		dest = fmt.Sprintf("%s-%d", base, i)
	}
}

func uniqueName(name string, used map[string]int) string {
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "photo.jpg"
	}
	used[name]++
	if used[name] == 1 {
		return name
	}
	ext := filepath.Ext(name)
	candidate := fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), used[name], ext)
	used[candidate]++
	return candidate
}

// Clipboard writes text to the system clipboard
type Clipboard struct{}

// WriteText copies text
func (Clipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}
