package source

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// TextSource loads tickers from a UTF-8 text file, one symbol per line.
// Surrounding whitespace is trimmed and blank lines are skipped.
type TextSource struct {
	Path string
}

func (s TextSource) Load(ctx context.Context) ([]string, error) { //nolint:revive // ctx reserved for future use
	info, err := os.Stat(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: s.Path}
		}
		return nil, fmt.Errorf("stat %s: %w", s.Path, err)
	}
	if info.Size() == 0 {
		return nil, &EmptyResourceError{Path: s.Path}
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer f.Close()

	var tickers []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		code := strings.TrimSpace(sc.Text())
		if code == "" {
			continue
		}
		tickers = append(tickers, code)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return tickers, nil
}
