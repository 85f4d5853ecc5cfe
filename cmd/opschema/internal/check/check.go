package check

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/broady/opschema"
	"github.com/broady/opschema/cmd/opschema/internal/cli"
)

type Cmd struct {
	Strict bool `help:"Treat warnings as errors."`

	// W receives the report. Nil means os.Stdout.
	W io.Writer `kong:"-"`
}

func (c *Cmd) Run(g *cli.Globals) error {
	cfg, logger, err := g.Load()
	if err != nil {
		return err
	}
	w := c.W
	if w == nil {
		w = os.Stdout
	}

	schema, err := opschema.NewGenerator(cfg).WithLogger(logger).Generate(context.Background())
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "✓ %d queries, %d mutations, %d source fields\n",
		len(schema.Queries()), len(schema.Mutations()), len(schema.SourceFields()))
	fmt.Fprintf(w, "✓ %d types\n", len(schema.Types))

	for _, warn := range schema.Warnings {
		fmt.Fprintf(w, "! %s: %s\n", warn.Code, warn.Message)
	}
	if c.Strict && len(schema.Warnings) > 0 {
		return fmt.Errorf("%d warnings", len(schema.Warnings))
	}
	return nil
}
