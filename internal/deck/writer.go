package deck

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/abhisek/rote/internal/question"
)

// Order is the score order questions are written in.
type Order int

const (
	OrderAscending Order = iota
	OrderDescending
)

// ParseOrder converts "asc" or "desc" to an Order.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "", "asc":
		return OrderAscending, nil
	case "desc":
		return OrderDescending, nil
	}
	return 0, fmt.Errorf("invalid save order %q: must be asc or desc", s)
}

func (o Order) String() string {
	if o == OrderDescending {
		return "desc"
	}
	return "asc"
}

// Writer persists decks, replacing the destination file atomically.
type Writer struct {
	order Order
}

// NewWriter creates a writer that saves questions in the given order.
func NewWriter(order Order) *Writer {
	return &Writer{order: order}
}

// Write serializes qs in the format implied by dest's extension.
func (w *Writer) Write(ctx context.Context, qs []question.Question, dest string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	format, err := FormatOf(dest)
	if err != nil {
		return err
	}

	ordered := append([]question.Question(nil), qs...)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := question.MinScore(ordered[i]), question.MinScore(ordered[j])
		if w.order == OrderDescending {
			return a > b
		}
		return a < b
	})

	data, err := Encode(ordered, format)
	if err != nil {
		return fmt.Errorf("encode deck: %w", err)
	}
	if err := writeFileAtomic(dest, data); err != nil {
		return fmt.Errorf("write deck: %w", err)
	}
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place, keeping the existing file mode.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
