package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/dmitrijs2005/aiworkbench/internal/buildinfo"
	"github.com/dmitrijs2005/aiworkbench/internal/logging"
	"github.com/dmitrijs2005/aiworkbench/internal/server"
	"github.com/dmitrijs2005/aiworkbench/internal/server/config"
	"github.com/spf13/pflag"
)

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

func main() {
	fs := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	config.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	displayAppname("authstub")
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(fs)
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat).With("app", "authstub")

	app, err := server.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}
}
