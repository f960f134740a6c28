package main

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli"
)

var version = "v1.0.0"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf(".env load warning: %v", err)
	}

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal("Error: ", err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "compass"
	app.Usage = "query a restaurant catalog file offline"
	app.Version = version
	app.Commands = []cli.Command{
		{
			Name:   "search",
			Usage:  "evaluate a search query against a catalog file and print the results as JSON",
			Flags:  searchFlags,
			Action: searchAction,
		},
		{
			Name:   "validate",
			Usage:  "load a catalog file and report whether every record is usable",
			Flags:  []cli.Flag{catalogFlag},
			Action: validateAction,
		},
	}
	return app
}
