// Command getconf resolves configuration keys from the command line the
// same way the library does, which makes it handy for debugging precedence
// questions: which file wins, whether an environment variable is picked
// up, and what a key's derived variable name is.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/cfgtools/getconf"
)

func main() {
	app := &cli.Command{
		Name:  "getconf",
		Usage: "resolve configuration keys from environment, files and defaults",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "namespace",
				Aliases: []string{"n"},
				Usage:   "environment variable namespace (empty for none)",
			},
			&cli.StringSliceFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "config file, directory or glob (repeatable, least important first)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log file discovery and coercion failures",
			},
		},
		Commands: []*cli.Command{
			getCommand,
			filesCommand,
			envKeyCommand,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var getCommand = &cli.Command{
	Name:      "get",
	Usage:     "resolve one key and print its value",
	ArgsUsage: "<section.entry>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "default",
			Usage: "value to use when no source knows the key",
		},
		&cli.StringFlag{
			Name:  "type",
			Value: "string",
			Usage: "one of string, list, bool, int, float, duration, path",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() != 1 {
			return fmt.Errorf("expected exactly one key, got %d", cmd.Args().Len())
		}
		key := cmd.Args().First()

		config, err := newGetter(cmd)
		if err != nil {
			return err
		}

		def := cmd.String("default")
		switch cmd.String("type") {
		case "string":
			value, err := config.GetString(key, def, "")
			if err != nil {
				return err
			}
			fmt.Println(value)
		case "list":
			value, err := config.GetList(key, def, "")
			if err != nil {
				return err
			}
			fmt.Println(strings.Join(value, "\n"))
		case "bool":
			value, err := config.GetBool(key, parseBoolDefault(def), "")
			if err != nil {
				return err
			}
			fmt.Println(value)
		case "int":
			defValue := 0
			if def != "" {
				defValue, err = strconv.Atoi(def)
				if err != nil {
					return fmt.Errorf("invalid int default %q", def)
				}
			}
			value, err := config.GetInt(key, defValue, "")
			if err != nil {
				return err
			}
			fmt.Println(value)
		case "float":
			defValue := 0.0
			if def != "" {
				defValue, err = strconv.ParseFloat(def, 64)
				if err != nil {
					return fmt.Errorf("invalid float default %q", def)
				}
			}
			value, err := config.GetFloat(key, defValue, "")
			if err != nil {
				return err
			}
			fmt.Println(value)
		case "duration":
			value, err := config.GetDuration(key, def, "")
			if err != nil {
				return err
			}
			fmt.Println(value)
		case "path":
			value, err := config.GetPath(key, def, "")
			if err != nil {
				return err
			}
			fmt.Println(value)
		default:
			return fmt.Errorf("unknown type %q", cmd.String("type"))
		}
		return nil
	},
}

var filesCommand = &cli.Command{
	Name:  "files",
	Usage: "print the search and found file lists",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		config, err := newGetter(cmd)
		if err != nil {
			return err
		}
		for _, path := range config.SearchFiles() {
			fmt.Printf("search\t%s\n", path)
		}
		for _, path := range config.FoundFiles() {
			fmt.Printf("found\t%s\n", path)
		}
		return nil
	},
}

var envKeyCommand = &cli.Command{
	Name:      "env-key",
	Usage:     "print the environment variable name derived for a key",
	ArgsUsage: "<section.entry>",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() != 1 {
			return fmt.Errorf("expected exactly one key, got %d", cmd.Args().Len())
		}
		fmt.Println(getconf.NewEnvFinder(cmd.String("namespace")).EnvKey(cmd.Args().First()))
		return nil
	},
}

func newGetter(cmd *cli.Command) (*getconf.Getter, error) {
	opts := []getconf.Option{getconf.WithFiles(cmd.StringSlice("file")...)}
	if cmd.Bool("verbose") {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("build logger: %w", err)
		}
		opts = append(opts, getconf.WithLogger(logger))
	}
	return getconf.New(cmd.String("namespace"), opts...)
}

func parseBoolDefault(def string) bool {
	switch strings.ToLower(def) {
	case "on", "true", "yes", "1":
		return true
	}
	return false
}
