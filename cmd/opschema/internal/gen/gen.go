package gen

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/broady/opschema"
	"github.com/broady/opschema/cmd/opschema/internal/cli"
	"github.com/broady/opschema/sink"
)

type Cmd struct {
	Out       string `help:"Output directory (overrides output_dir)." short:"o" type:"path"`
	File      string `help:"Schema file name below the output directory (overrides output)." short:"f"`
	Stdout    bool   `help:"Print the schema instead of writing a file."`
	NoClobber bool   `help:"Fail if the schema file already exists." name:"no-clobber"`

	// W receives the schema with --stdout. Nil means os.Stdout.
	W io.Writer `kong:"-"`
}

func (c *Cmd) Run(g *cli.Globals) error {
	cfg, logger, err := g.Load()
	if err != nil {
		return err
	}
	if c.Out != "" {
		cfg.OutputDir = c.Out
	}
	if c.File != "" {
		cfg.Output = c.File
	}

	ctx := context.Background()
	schema, err := opschema.NewGenerator(cfg).WithLogger(logger).Generate(ctx)
	if err != nil {
		return err
	}

	var out sink.OutputSink
	if c.Stdout {
		w := c.W
		if w == nil {
			w = os.Stdout
		}
		out = sink.NewWriterSink(w)
	} else {
		fs := sink.NewFilesystemSink(cfg.OutputDir)
		fs.Overwrite = !c.NoClobber
		out = fs
	}
	if err := sink.WriteSchema(ctx, out, cfg.Output, schema); err != nil {
		return err
	}

	if !c.Stdout {
		logger.Info("wrote schema",
			"path", fmt.Sprintf("%s/%s", cfg.OutputDir, cfg.Output),
			"operations", len(schema.Operations),
			"types", len(schema.Types))
	}
	return nil
}
