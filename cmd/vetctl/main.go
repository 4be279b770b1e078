package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	cc "github.com/ivanpirog/coloredcobra"

	"github.com/kochabx/vetclinic/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCmd()
	cc.Init(&cc.Config{
		RootCmd:  rootCmd,
		Headings: cc.HiCyan + cc.Bold + cc.Underline,
		Commands: cc.HiYellow + cc.Bold,
		Example:  cc.Italic,
		ExecName: cc.Bold,
		Flags:    cc.Bold,
	})

	if err := cli.Execute(ctx, rootCmd); err != nil {
		stop()
		os.Exit(1)
	}
}
