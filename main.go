package main

import (
	"github.com/alecthomas/kong"
	"github.com/alecthomas/kong-yaml"

	"github.com/furious-luke/datetimeutils/internal"
)

type NowCmd struct {
	Date    bool   `help:"Print the current date only."`
	Pattern string `help:"Pattern to use instead of the configured one."`
}

func (n *NowCmd) Run(ctx *internal.Context) error {
	return internal.Now(n.Date, n.Pattern, ctx)
}

type FormatCmd struct {
	Value   string `arg:"" name:"value" help:"ISO date (2024-01-05) or date-time (2024-01-05T10:11:12) to format."`
	Pattern string `arg:"" name:"pattern" optional:"" help:"Pattern to format with."`
	Date    bool   `help:"Treat the value as a date."`
}

func (f *FormatCmd) Run(ctx *internal.Context) error {
	return internal.Format(f.Value, f.Pattern, f.Date, ctx)
}

type ParseCmd struct {
	Text    string `arg:"" name:"text" help:"Text to parse."`
	Pattern string `arg:"" name:"pattern" optional:"" help:"Pattern the text is written in."`
	Date    bool   `help:"Parse a date rather than a date-time."`
}

func (p *ParseCmd) Run(ctx *internal.Context) error {
	return internal.Parse(p.Text, p.Pattern, p.Date, ctx)
}

type ConvertCmd struct {
	Text string `arg:"" name:"text" help:"Text to convert."`
	From string `arg:"" name:"from" help:"Pattern the text is written in."`
	To   string `arg:"" name:"to" help:"Pattern to write the result in."`
	Date bool   `help:"Convert a date rather than a date-time."`
}

func (c *ConvertCmd) Run(ctx *internal.Context) error {
	return internal.Convert(c.Text, c.From, c.To, c.Date, ctx)
}

type CliArguments struct {
	ConfigFile      kong.ConfigFlag `short:"c"`
	Debug           bool            `help:"Enable debug mode."`
	DatetimePattern string          `env:"DATETIMEUTILS_DATETIME_PATTERN" help:"Default date-time pattern."`
	DatePattern     string          `env:"DATETIMEUTILS_DATE_PATTERN" help:"Default date pattern."`
	Now             NowCmd          `cmd:"" help:"Print the current date-time."`
	Format          FormatCmd       `cmd:"" help:"Format an ISO value with a pattern."`
	Parse           ParseCmd        `cmd:"" help:"Parse text with a pattern."`
	Convert         ConvertCmd      `cmd:"" help:"Re-render text from one pattern into another."`
}

func main() {
	var cli CliArguments
	kongCtx := kong.Parse(
		&cli,
		kong.Name("datetimeutils"),
		kong.Description("Format and parse dates with yyyy-MM-dd style patterns."),
		kong.Configuration(kongyaml.Loader, "/etc/datetimeutils/datetimeutils.yaml", "~/.datetimeutils.yaml"),
	)
	ctx := internal.Context{
		Debug: cli.Debug,
		Patterns: internal.Patterns{
			DateTime: cli.DatetimePattern,
			Date:     cli.DatePattern,
		},
	}
	err := internal.PrepareContext(&ctx)
	kongCtx.FatalIfErrorf(err)
	err = kongCtx.Run(&ctx)
	ctx.Log.Sync()
	kongCtx.FatalIfErrorf(err)
}
