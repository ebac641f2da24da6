package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/ezBadminton/badmintondraw/core"
	"golang.org/x/sync/errgroup"
)

// Returns a file name for the tournament without extension
func FileBaseName(t *core.Tournament) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			return r
		case unicode.IsSpace(r):
			return '_'
		}
		return -1
	}, strings.TrimSpace(t.Name))

	if name == "" {
		return "tournament"
	}
	return name
}

// Writes the CSV and the XLSX export of the tournament into dir
// and returns the paths of the written files
func WriteFiles(ctx context.Context, t *core.Tournament, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	base := filepath.Join(dir, FileBaseName(t))
	writers := []struct {
		path  string
		write func(io.Writer, *core.Tournament) error
	}{
		{base + ".csv", WriteCSV},
		{base + ".xlsx", WriteXLSX},
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, w := range writers {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return writeFile(w.path, t, w.write)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(writers))
	for _, w := range writers {
		paths = append(paths, w.path)
	}
	return paths, nil
}

func writeFile(path string, t *core.Tournament, write func(io.Writer, *core.Tournament) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	if err := write(f, t); err != nil {
		return fmt.Errorf("failed to export %v: %w", filepath.Base(path), err)
	}
	return nil
}
