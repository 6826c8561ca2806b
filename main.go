package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"i3split/pkg/i3"
	"i3split/server"
	"i3split/service"
)

// Version is overridden at build time.
var Version = "unknown_version"

func main() {
	app := &cli.App{
		Name:    "i3split",
		Usage:   "automatic split layout service for the i3 window manager",
		Version: Version,
		Commands: []*cli.Command{
			autolayoutCommand(),
			tabmodeCommand(),
			treeCommand(),
			versionCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func autolayoutCommand() *cli.Command {
	config, err := newConfig()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	return &cli.Command{
		Name:  "autolayout",
		Usage: "run the automatic split layout service (blocks forever)",
		Flags: generateFlags(config),
		Action: func(c *cli.Context) error {
			config, err := loadConfig(c)
			if err != nil {
				return err
			}

			svc, err := service.New(config.SocketPath)
			if err != nil {
				return err
			}
			defer svc.Close()

			if config.InspectAddress != "" {
				inspect := server.New(server.Options{
					Address:    config.InspectAddress,
					Credential: config.InspectCredential,
					SocketPath: config.SocketPath,
				})
				svc.OnDecision(inspect.Publish)
				go func() {
					log.Printf("Inspection server stopped: %v", inspect.Run())
				}()
			}

			return svc.Run()
		},
	}
}

func tabmodeCommand() *cli.Command {
	return &cli.Command{
		Name:  "tabmode",
		Usage: "convert the focused container to a tabbed layout",
		Flags: socketFlagOnly(),
		Action: func(c *cli.Context) error {
			return service.TabMode(c.String("socket-path"))
		},
	}
}

func treeCommand() *cli.Command {
	return &cli.Command{
		Name:  "tree",
		Usage: "print the current container tree",
		Flags: socketFlagOnly(),
		Action: func(c *cli.Context) error {
			client, err := i3.Connect(c.String("socket-path"))
			if err != nil {
				return err
			}
			defer client.Close()

			root, err := client.GetTree()
			if err != nil {
				return err
			}
			service.PrintTree(os.Stdout, root)
			return nil
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "print the window manager version",
		Flags: socketFlagOnly(),
		Action: func(c *cli.Context) error {
			client, err := i3.Connect(c.String("socket-path"))
			if err != nil {
				return err
			}
			defer client.Close()

			version, err := client.GetVersion()
			if err != nil {
				return err
			}
			fmt.Printf("i3 version: %s\nConfig file: %s\n",
				version.HumanReadable, version.LoadedConfigFileName)
			return nil
		},
	}
}

func socketFlagOnly() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "socket-path",
			Aliases: []string{"s"},
			Usage:   "Path to the manager IPC socket (default: discovered)",
		},
	}
}
