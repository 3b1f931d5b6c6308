// Package discovery produces the launcher's candidate list, either by
// scanning the directories on $PATH or by reading lines from a stream.
package discovery

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/atomicstack/runpop/internal/logging/events"
)

// maxScanners bounds how many PATH directories are read at once.
const maxScanners = 8

// Executables lists executable names from every directory in pathList, in
// PATH order and, within a directory, in lexical order. Directories that
// cannot be read are skipped, as are names that are not valid UTF-8. Names
// are not deduplicated.
func Executables(ctx context.Context, pathList string) ([]string, error) {
	dirs := filepath.SplitList(pathList)
	found := make([][]string, len(dirs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxScanners)
	for i, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			names, err := scanDir(dir)
			if err != nil {
				events.Discovery.Skip(dir, err)
				return nil
			}
			found[i] = names
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var names []string
	for _, group := range found {
		names = append(names, group...)
	}
	events.Discovery.Done(len(dirs), len(names))
	return names, nil
}

func scanDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !utf8.ValidString(entry.Name()) {
			events.Discovery.Invalid(dir, entry.Name())
			continue
		}
		// Stat follows symlinks, so links to executables are kept and
		// dangling links are dropped.
		info, err := os.Stat(filepath.Join(dir, entry.Name()))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if info.Mode().Perm()&0o111 == 0 {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// ReadLines returns the non-empty lines of r, trimmed of trailing carriage
// returns, in input order. Lines that are not valid UTF-8 are dropped.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !utf8.ValidString(line) {
			events.Discovery.Invalid("stdin", line)
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
