package deck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/abhisek/rote/internal/question"
)

// ErrNoDecks is returned when the deck directory holds no deck files.
var ErrNoDecks = errors.New("no deck files found")

// LineReader yields one trimmed line of user input per call.
type LineReader interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

// Source lists and loads deck files from a directory.
type Source struct {
	dir string
}

// NewSource creates a Source over dir.
func NewSource(dir string) *Source {
	return &Source{dir: dir}
}

// List returns the names of deck files in the directory, sorted.
func (s *Source) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read deck directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if _, err := FormatOf(e.Name()); err != nil {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Choose prints the available decks numbered from 1 and asks until the
// user enters a valid selection. The first selected number wins. It
// returns the path of the chosen deck.
func (s *Source) Choose(ctx context.Context, in LineReader, out io.Writer) (string, error) {
	names, err := s.List()
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoDecks, s.dir)
	}

	for i, name := range names {
		fmt.Fprintf(out, "%d. %s\n", i+1, name)
	}

	for {
		line, err := in.ReadLine(ctx, "Select deck number: ")
		if err != nil {
			return "", fmt.Errorf("read selection: %w", err)
		}
		nums, invalid := ParseSelection(line, len(names))
		if len(invalid) > 0 {
			fmt.Fprintf(out, "Numbers %v are out of range. Please choose numbers between 1 and %d\n", invalid, len(names))
			continue
		}
		if len(nums) == 0 {
			fmt.Fprintf(out, "Please enter a number between 1 and %d\n", len(names))
			continue
		}
		return filepath.Join(s.dir, names[nums[0]-1]), nil
	}
}

// Select runs Choose and loads the chosen deck.
func (s *Source) Select(ctx context.Context, in LineReader, out io.Writer) (string, []question.Question, error) {
	path, err := s.Choose(ctx, in, out)
	if err != nil {
		return "", nil, err
	}
	qs, err := Load(path)
	if err != nil {
		return "", nil, err
	}
	return path, qs, nil
}

// ParseSelection splits input into whitespace-separated numbers within
// 1..max. Tokens that are not numbers or fall outside the range are
// returned as invalid.
func ParseSelection(input string, max int) (nums []int, invalid []string) {
	for _, tok := range strings.Fields(input) {
		n, err := strconv.Atoi(tok)
		if err != nil || n < 1 || n > max {
			invalid = append(invalid, tok)
			continue
		}
		nums = append(nums, n)
	}
	return nums, invalid
}
