package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLSource loads tickers from a YAML file. Two shapes are supported:
// a top-level sequence of symbols, or a map with a "tickers" sequence.
type YAMLSource struct {
	Path string
}

func (s YAMLSource) Load(ctx context.Context) ([]string, error) { //nolint:revive // ctx reserved for future use
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: s.Path}
		}
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	if len(data) == 0 {
		return nil, &EmptyResourceError{Path: s.Path}
	}

	var symbols []string
	if err := yaml.Unmarshal(data, &symbols); err != nil {
		var alt struct {
			Tickers []string `yaml:"tickers"`
		}
		if err2 := yaml.Unmarshal(data, &alt); err2 != nil {
			return nil, fmt.Errorf("parse yaml %s: %w", s.Path, err)
		}
		symbols = alt.Tickers
	}

	tickers := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		sym = strings.TrimSpace(sym)
		if sym == "" {
			continue
		}
		tickers = append(tickers, sym)
	}
	if len(tickers) == 0 {
		return nil, &EmptyResourceError{Path: s.Path}
	}
	return tickers, nil
}
