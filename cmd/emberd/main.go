// emberd is a CLI which runs the Ember engine process.
package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/EmberHQ/ember-engine/pkg/burnclient"
	"github.com/EmberHQ/ember-engine/pkg/engine"
	"github.com/EmberHQ/ember-engine/pkg/engine/config"
	"github.com/EmberHQ/ember-engine/pkg/log"
)

func main() {
	logger, err := log.NewDefaultProductionLogger()
	if err != nil {
		panic(err)
	}
	app := cli.App{
		Usage: "Ember proof of burn engine",
		Commands: []*cli.Command{
			{
				Name:  "start",
				Usage: "Start the engine",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "indexer-url",
						Aliases:  []string{"i"},
						Usage:    "Websocket URL of the burn chain indexer",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to engine config",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					configPath := c.String("config")
					configData, err := os.ReadFile(configPath)
					if err != nil {
						return err
					}
					engineConfig := &config.Config{}
					if err := json.Unmarshal(configData, engineConfig); err != nil {
						return err
					}

					indexerURL := c.String("indexer-url")
					client := burnclient.NewClient(logger)
					logger.Infof("Connecting to burn indexer at %s", indexerURL)
					if err := client.Start(indexerURL); err != nil {
						return err
					}
					defer client.Close()

					ember := engine.NewEngine(client, engineConfig)
					client.OnNewBurnBlock(func() {
						ember.OnBurnBlock()
					})

					engineChan := make(chan error, 1)
					signalChan := make(chan os.Signal, 1)
					signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

					go func() {
						if err := ember.Start(); err != nil {
							engineChan <- err
						}
					}()
					if err := client.Subscribe(); err != nil {
						return err
					}
					for {
						select {
						case <-signalChan:
							ember.Stop()
							logger.Info("Closing engine with SIGTERM")
							return nil
						case err := <-engineChan:
							ember.Stop()
							logger.Errorf("Closing engine with err %s", err)
						}
					}
				},
			},
			GetKeysCommand(),
		},
	}
	err = app.Run(os.Args)
	if err != nil {
		logger.Errorf("Fail running application with %s", err)
	}
}
