package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/broady/opschema/cmd/opschema/internal/check"
	"github.com/broady/opschema/cmd/opschema/internal/cli"
	"github.com/broady/opschema/cmd/opschema/internal/gen"
)

type CLI struct {
	cli.Globals

	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Generate the operation schema as JSON."`
	Check   check.Cmd  `cmd:"" help:"Build and validate the schema without writing files."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	var c CLI
	ctx := kong.Parse(&c,
		kong.Name("opschema"),
		kong.Description("Derive query, mutation and source-field operations from annotated Go methods."),
		kong.UsageOnError(),
	)
	err := ctx.Run(&c.Globals)
	ctx.FatalIfErrorf(err)
}
