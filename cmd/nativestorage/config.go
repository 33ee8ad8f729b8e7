package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const envPrefix = "NATIVESTORAGE_"

const (
	backendMemory  = "memory"
	backendLevelDB = "leveldb"
	backendKeyring = "keyring"

	areaLocal = "local"
	areaSync  = "sync"
)

// LevelDBConf configures the leveldb backend.
type LevelDBConf struct {
	Path string `koanf:"path"`
}

// KeyringConf configures the keyring backend.
type KeyringConf struct {
	Service string `koanf:"service"`
}

// LogConf configures the logger.
type LogConf struct {
	Level string `koanf:"level"`
}

// Config is the configuration of the command.
type Config struct {
	Backend string      `koanf:"backend"`
	Area    string      `koanf:"area"`
	DelayMs int         `koanf:"delay"`
	LevelDB LevelDBConf `koanf:"leveldb"`
	Keyring KeyringConf `koanf:"keyring"`
	Log     LogConf     `koanf:"log"`
}

// Validate checks that the backend and the area are known.
func (c *Config) Validate() error {
	switch c.Backend {
	case backendMemory, backendLevelDB, backendKeyring:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend) //nolint: err113
	}

	switch c.Area {
	case areaLocal, areaSync:
	default:
		return fmt.Errorf("unknown area %q", c.Area) //nolint: err113
	}

	if c.Backend == backendLevelDB && c.LevelDB.Path == "" {
		return errors.New("leveldb.path is required by the leveldb backend") //nolint: err113
	}

	return nil
}

// ReadConf reads the yaml file, then the environment, then the flags. It returns the remaining positional arguments.
func ReadConf(args []string) (*Config, []string, error) {
	k := koanf.New(".")

	flags := newFlagSet()
	if err := flags.Parse(args); err != nil {
		return nil, nil, err //nolint: wrapcheck
	}

	yamlPath, _ := flags.GetString("conf") //nolint: errcheck

	if _, err := os.Stat(yamlPath); err == nil || flags.Changed("conf") {
		if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
			return nil, nil, fmt.Errorf("failed to load %s: %w", yamlPath, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, nil, fmt.Errorf("failed to load flags: %w", err)
	}

	var conf Config

	if err := k.Unmarshal("", &conf); err != nil {
		return nil, nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, nil, err
	}

	return &conf, flags.Args(), nil
}

// envKey maps NATIVESTORAGE_LEVELDB_PATH to leveldb.path. A double underscore stands for a literal one.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	s = strings.ReplaceAll(s, "__", "#")
	s = strings.ReplaceAll(s, "_", ".")

	return strcase.ToSnakeWithIgnore(strings.ReplaceAll(s, "#", " "), ".")
}

func newFlagSet() *pflag.FlagSet {
	f := pflag.NewFlagSet("nativestorage", pflag.ContinueOnError)
	f.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: nativestorage [flags] get <key> | set <key> <value>")
		fmt.Fprintln(os.Stderr, f.FlagUsages())
	}

	f.String("conf", "nativestorage.yaml", "configuration file")
	f.String("backend", backendMemory, "storage backend: memory, leveldb or keyring")
	f.String("area", areaLocal, "storage area: local or sync")
	f.Int("delay", 1000, "delay before each local operation, in milliseconds")
	f.String("leveldb.path", "", "leveldb database directory")
	f.String("keyring.service", "nativestorage", "keyring service name")
	f.String("log.level", "info", "log level")

	return f
}
