package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Worker  WorkerCmd        `cmd:"" help:"Run one bot session from a payload"`
	Resume  ResumeCmd        `cmd:"" help:"Resume a handed-off bot session"`
	Serve   ServeCmd         `cmd:"" help:"Run the spawn service"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("songbots"),
		kong.Description("Autonomous players for song-trivia party games"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
