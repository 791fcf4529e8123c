// Command aioconf inspects and resolves layered configuration specs from
// the command line: validate a spec document, or resolve it against a config
// file, the environment, and forwarded flags, exporting the result as JSON,
// INI, or TOML.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"aioconf"
)

func main() {
	app := &cli.App{
		Name:  "aioconf",
		Usage: "inspect and resolve layered configuration specs",
		Commands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "check a spec JSON document for structural problems",
				ArgsUsage: "<spec.json>",
				Action:    runValidate,
			},
			{
				Name:      "resolve",
				Usage:     "resolve a spec against file, environment, and flags",
				ArgsUsage: "[-- forwarded flags]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "spec",
						Aliases:  []string{"s"},
						Usage:    "path to the spec JSON document",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "optional configuration file (.json/.yaml/.ini/.toml)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"o"},
						Usage:   "output format: json, ini, or toml",
						Value:   "json",
					},
					&cli.BoolFlag{
						Name:  "verbose",
						Usage: "log resolution details to stderr",
					},
				},
				Action: runResolve,
			},
			{
				Name:      "fmt",
				Usage:     "parse a spec document and print its normalized form",
				ArgsUsage: "<spec.json>",
				Action:    runFmt,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "aioconf:", err)
		os.Exit(1)
	}
}

func runValidate(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one spec file argument")
	}

	spec, err := aioconf.LoadSpecFile(c.Args().First())
	if err != nil {
		return err
	}
	if err := aioconf.Validate(spec); err != nil {
		return err
	}

	count := 0
	spec.Walk(func(path string, opt *aioconf.OptionSpec) error {
		count++
		return nil
	})
	fmt.Printf("spec ok: %d option(s)\n", count)
	return nil
}

func runResolve(c *cli.Context) error {
	spec, err := aioconf.LoadSpecFile(c.String("spec"))
	if err != nil {
		return err
	}

	cfg, err := aioconf.New(spec)
	if err != nil {
		return err
	}
	if c.Bool("verbose") {
		cfg.SetLogger(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger())
	}

	if err := cfg.Load(aioconf.LoadOptions{
		Args:     c.Args().Slice(),
		FilePath: c.String("file"),
	}); err != nil {
		return err
	}

	values := cfg.Values()
	switch c.String("format") {
	case "json":
		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case "ini":
		data, err := aioconf.WriteINI(values)
		if err != nil {
			return err
		}
		os.Stdout.Write(data)
	case "toml":
		if err := toml.NewEncoder(os.Stdout).Encode(values); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown output format %q", c.String("format"))
	}
	return nil
}

func runFmt(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one spec file argument")
	}

	spec, err := aioconf.LoadSpecFile(c.Args().First())
	if err != nil {
		return err
	}

	data, err := spec.JSON()
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
