package config

import (
	"context"
	"io"
	"os"

	"github.com/matzehuels/qrnoize/pkg/distort"
	"github.com/matzehuels/qrnoize/pkg/errors"
)

// Table is a fully parsed configuration: every flushed block in order.
// Names may repeat; a repeated name yields a new block.
type Table struct {
	Blocks   []Block
	Warnings []Warning
}

// Parse reads a whole configuration into a Table.
func Parse(r io.Reader, opts Options) (*Table, error) {
	t := &Table{}
	in := NewInterpreter(opts, func(_ context.Context, b *Block, _ *distort.Stack) error {
		t.Blocks = append(t.Blocks, *b)
		return nil
	}, nil)
	if err := in.Run(context.Background(), r); err != nil {
		return nil, err
	}
	t.Warnings = in.Warnings()
	return t, nil
}

// ParseFile reads and parses the configuration at path.
func ParseFile(path string, opts Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open config %s", path)
	}
	defer f.Close()
	return Parse(f, opts)
}

// Lookup returns the first block with the given name.
func (t *Table) Lookup(name string) (*Block, bool) {
	for i := range t.Blocks {
		if t.Blocks[i].Name == name {
			return &t.Blocks[i], true
		}
	}
	return nil, false
}

// Names returns block names in order, without duplicates.
func (t *Table) Names() []string {
	seen := make(map[string]bool, len(t.Blocks))
	var names []string
	for _, b := range t.Blocks {
		if !seen[b.Name] {
			seen[b.Name] = true
			names = append(names, b.Name)
		}
	}
	return names
}
