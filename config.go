package main

import (
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/structs"
	"github.com/pkg/errors"
	"github.com/yudai/hcl"
)

// DefaultConfigFilePath is consulted when the user does not pass
// --config explicitly; a missing file is then not an error.
const DefaultConfigFilePath = "~/.i3split"

// Config holds every tunable of the daemon. Values come from the
// struct defaults, then the config file, then command line flags, in
// that order.
type Config struct {
	SocketPath        string `hcl:"socket_path" flagName:"socket-path" flagSName:"s" flagDescribe:"Path to the manager IPC socket (default: discovered)" default:""`
	InspectAddress    string `hcl:"inspect_address" flagName:"inspect-addr" flagSName:"a" flagDescribe:"Serve the inspection endpoint at this address, e.g. 127.0.0.1:9223" default:""`
	InspectCredential string `hcl:"inspect_credential" flagName:"inspect-credential" flagSName:"c" flagDescribe:"Basic auth credential for the inspection endpoint (user:pass)" default:""`
}

func newConfig() (*Config, error) {
	config := &Config{}
	if err := applyDefaults(config); err != nil {
		return nil, err
	}
	return config, nil
}

func applyDefaults(config *Config) error {
	for _, field := range structs.New(config).Fields() {
		if err := setFieldValue(field, field.Tag("default")); err != nil {
			return err
		}
	}
	return nil
}

func applyConfigFile(config *Config, filePath string) error {
	filePath = expandHomeDir(filePath)
	if _, err := os.Stat(filePath); err != nil {
		return err
	}

	fileString, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	if err := hcl.Decode(config, string(fileString)); err != nil {
		return errors.Wrapf(err, "failed to parse config file %q", filePath)
	}
	return nil
}

func setFieldValue(field *structs.Field, value string) error {
	switch field.Kind().String() {
	case "string":
		return field.Set(value)
	case "bool":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Wrapf(err, "invalid bool value %q for %s", value, field.Name())
		}
		return field.Set(parsed)
	default:
		return errors.Errorf("unsupported config field type for %s", field.Name())
	}
}

func isNotExist(err error) bool {
	return os.IsNotExist(errors.Cause(err))
}

func expandHomeDir(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	me, err := user.Current()
	if err != nil {
		return path
	}
	return filepath.Join(me.HomeDir, path[2:])
}
