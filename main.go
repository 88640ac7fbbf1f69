package main

import (
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	joonix "github.com/joonix/log"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/heidelpay/heidelpay-go/api"
	"github.com/heidelpay/heidelpay-go/heidelpay"
	"github.com/heidelpay/heidelpay-go/server"
)

func main() {
	_ = godotenv.Load("dev.env")

	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "heidelpay"
	app.Usage = "Work with the heidelpay payment API"
	app.Version = heidelpay.Version
	app.Compiled = time.Now()
	app.Writer = out
	app.Flags = []cli.Flag{
		cli.BoolFlag{Name: "verbose", Usage: "log every gateway request"},
	}
	app.Before = func(c *cli.Context) error {
		log.SetFormatter(joonix.NewFormatter())
		if c.Bool("verbose") {
			log.SetLevel(log.DebugLevel)
		}
		return nil
	}
	app.Commands = append(sdkCommands(), cli.Command{
		Name:  "listen",
		Usage: "Starts the notification listener",
		Action: func(c *cli.Context) error {
			wrapper, err := server.GetAppContext()
			if err != nil {
				return err
			}
			if err := wrapper.CreateHeidelpayClient(); err != nil {
				return err
			}
			server.UpServer(api.GetRoutes(), wrapper)
			return nil
		},
	})
	return app
}
