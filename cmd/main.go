package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	crowdestate "github.com/marcelofeitoza/crowd-estate"
	"github.com/marcelofeitoza/crowd-estate/common"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name: "crowd-estate",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db_dir", Value: "./data/bolt", Usage: "bolt db dir path", EnvVars: []string{"DB_DIR"}},
			&cli.StringFlag{Name: "mysql", Value: "root@tcp(127.0.0.1:3306)/crowdestate?charset=utf8mb4&parseTime=True&loc=Local", Usage: "mysql dsn", EnvVars: []string{"MYSQL"}},
			&cli.BoolFlag{Name: "use_sqlite", Value: false, Usage: "run with sqlite instead of mysql", EnvVars: []string{"USE_SQLITE"}},
			&cli.StringFlag{Name: "sqlite_dir", Value: "./data/sqlite", Usage: "sqlite db dir path", EnvVars: []string{"SQLITE_DIR"}},
			&cli.StringFlag{Name: "payment_mint", Value: "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", Usage: "payment token mint address", EnvVars: []string{"PAYMENT_MINT"}},
			&cli.StringFlag{Name: "kafka_uri", Value: "127.0.0.1:9092", Usage: "kafka broker uri", EnvVars: []string{"KAFKA_URI"}},
			&cli.BoolFlag{Name: "use_kafka", Value: false, Usage: "publish platform events to kafka", EnvVars: []string{"USE_KAFKA"}},
			&cli.BoolFlag{Name: "enable_faucet", Value: false, Usage: "enable the dev-mode payment faucet endpoint", EnvVars: []string{"ENABLE_FAUCET"}},

			&cli.StringFlag{Name: "port", Value: ":8080", EnvVars: []string{"PORT"}},
		},
		Action: run,
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	common.NewMetricServer()

	s := crowdestate.New(
		c.String("db_dir"), c.String("mysql"), c.String("sqlite_dir"), c.Bool("use_sqlite"),
		c.String("payment_mint"), c.String("kafka_uri"), c.Bool("use_kafka"), c.Bool("enable_faucet"),
	)
	s.Run(c.String("port"))

	<-signals
	s.Close()

	return nil
}
