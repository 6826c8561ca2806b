package main

import (
	"github.com/fatih/structs"
	"github.com/urfave/cli/v2"
)

// generateFlags derives command line flags from the Config struct
// tags, so flag, config file, and default stay defined in one place.
func generateFlags(config *Config) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Value: DefaultConfigFilePath,
			Usage: "Config file path",
		},
	}

	for _, field := range structs.New(config).Fields() {
		flagName := field.Tag("flagName")
		if flagName == "" {
			continue
		}

		var aliases []string
		if short := field.Tag("flagSName"); short != "" {
			aliases = []string{short}
		}

		switch field.Kind().String() {
		case "string":
			flags = append(flags, &cli.StringFlag{
				Name:    flagName,
				Aliases: aliases,
				Value:   field.Tag("default"),
				Usage:   field.Tag("flagDescribe"),
			})
		case "bool":
			flags = append(flags, &cli.BoolFlag{
				Name:    flagName,
				Aliases: aliases,
				Usage:   field.Tag("flagDescribe"),
			})
		}
	}
	return flags
}

// applyFlags copies flags the user actually set onto the config,
// overriding file values.
func applyFlags(config *Config, c *cli.Context) error {
	for _, field := range structs.New(config).Fields() {
		flagName := field.Tag("flagName")
		if flagName == "" || !c.IsSet(flagName) {
			continue
		}

		switch field.Kind().String() {
		case "string":
			if err := field.Set(c.String(flagName)); err != nil {
				return err
			}
		case "bool":
			if err := field.Set(c.Bool(flagName)); err != nil {
				return err
			}
		}
	}
	return nil
}

// loadConfig resolves the final configuration for one command
// invocation. A missing config file is only an error when the user
// named it explicitly.
func loadConfig(c *cli.Context) (*Config, error) {
	config, err := newConfig()
	if err != nil {
		return nil, err
	}

	configFile := c.String("config")
	if err := applyConfigFile(config, configFile); err != nil {
		if configFile != DefaultConfigFilePath || !isNotExist(err) {
			return nil, err
		}
	}

	if err := applyFlags(config, c); err != nil {
		return nil, err
	}
	return config, nil
}
