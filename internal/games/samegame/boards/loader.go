// Package boards provides board loading for SameGame.
// This package depends on core but core does not depend on boards.
package boards

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/samegame/internal/games/samegame/boards/formats"
)

// Board is a board definition together with the file it came from.
type Board struct {
	formats.Board
	FilePath string
}

// Loader handles loading boards from a directory.
type Loader struct {
	Root string
	Rows int // Dimensions for text files
	Cols int

	// OnSkip, when set, is called for every file that fails to parse.
	OnSkip func(path string, err error)
}

// NewLoader creates a new board loader. Text files are read with the given
// dimensions; YAML files carry their own.
func NewLoader(root string, rows, cols int) *Loader {
	return &Loader{Root: root, Rows: rows, Cols: cols}
}

// LoadAll recursively scans and loads all board files.
// Returns boards sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Board, error) {
	var boards []Board

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		loaded, err := l.LoadFile(path)
		if err != nil {
			if l.OnSkip != nil {
				l.OnSkip(path, err)
			}
			return nil
		}

		boards = append(boards, loaded...)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.SliceStable(boards, func(i, j int) bool {
		return boards[i].ID < boards[j].ID
	})

	return boards, nil
}

// LoadFile loads every board of a single file. A YAML file holds one board;
// a text file holds one or more, identified as <file stem>-<n>.
func (l *Loader) LoadFile(path string) ([]Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		parsed, err := formats.ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("parsing file %s: %w", path, err)
		}
		return []Board{{Board: parsed, FilePath: path}}, nil
	case ".txt":
		parsed, err := formats.ParseText(bytes.NewReader(data), l.Rows, l.Cols)
		if err != nil {
			return nil, fmt.Errorf("parsing file %s: %w", path, err)
		}
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		out := make([]Board, len(parsed))
		for i, b := range parsed {
			b.ID = fmt.Sprintf("%s-%d", stem, i+1)
			b.Name = fmt.Sprintf("%s #%d", stem, i+1)
			out[i] = Board{Board: b, FilePath: path}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported extension: %s", ext)
	}
}

// LoadByID loads a specific board by ID.
func (l *Loader) LoadByID(id string) (Board, error) {
	boards, err := l.LoadAll()
	if err != nil {
		return Board{}, err
	}

	for _, b := range boards {
		if b.ID == id {
			return b, nil
		}
	}

	return Board{}, fmt.Errorf("board not found: %s", id)
}

// ListIDs returns all board IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	boards, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(boards))
	for i, b := range boards {
		ids[i] = b.ID
	}
	return ids, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
