package main

import (
	"encoding/json"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/bodgit/eblb"
	"github.com/bodgit/eblb/colordb"
	"github.com/bodgit/eblb/render"
)

const defaultDB = "eblb.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func decodeFile(file string) (*eblb.Level, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	level := new(eblb.Level)
	if err := level.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return level, nil
}

// themeColors loads the renderer color table for --theme from the theme
// database, or returns nil so the built-in palette applies.
func themeColors(c *cli.Context) (map[byte]color.Color, error) {
	theme := c.String("theme")
	if theme == "" {
		return nil, nil
	}

	db, err := colordb.Open(c.String("db"))
	if err != nil {
		return nil, err
	}
	defer db.Close()

	colors, err := db.Colors(theme)
	if err != nil {
		return nil, err
	}
	if len(colors) == 0 {
		return nil, fmt.Errorf("no such theme %q", theme)
	}
	return colors, nil
}

func renderFile(in, out string, colors map[byte]color.Color, paletted bool) error {
	level, err := decodeFile(in)
	if err != nil {
		return err
	}

	m, err := render.Image(level, &render.Options{Colors: colors})
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if paletted {
		return png.Encode(f, render.Palettize(m))
	}
	return png.Encode(f, m)
}

// watchAndRender re-renders whenever the level file changes. The parent
// directory is watched rather than the file itself so editors that
// replace the file are still seen.
func watchAndRender(in, out string, colors map[byte]color.Color, paletted bool, logger *log.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(in)); err != nil {
		return err
	}

	var last time.Time
	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(in) {
				continue
			}
			if time.Since(last) < 100*time.Millisecond {
				continue
			}
			last = time.Now()

			if err := renderFile(in, out, colors, paletted); err != nil {
				logger.Printf("render %s: %v", in, err)
				continue
			}
			logger.Printf("rendered %s -> %s", in, out)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Printf("watch: %v", err)
		}
	}
}

// replaceExt swaps the extension of file for ext, used to derive default
// output filenames.
func replaceExt(file, ext string) string {
	return strings.TrimSuffix(file, filepath.Ext(file)) + ext
}

func outArg(c *cli.Context, ext string) string {
	if c.NArg() > 1 {
		return c.Args().Get(1)
	}
	return replaceExt(c.Args().First(), ext)
}

func main() {
	app := cli.NewApp()

	app.Name = "eblb"
	app.Usage = "EBLB level file utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"EBLB_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to theme database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "render",
			Usage:     "Render a level to a PNG image",
			ArgsUsage: "FILE [IMAGE]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "theme",
					Usage: "tile color theme from the database",
				},
				&cli.BoolFlag{
					Name:  "paletted",
					Usage: "quantize the output to 256 colors",
				},
				&cli.BoolFlag{
					Name:  "watch",
					Usage: "keep re-rendering when the level changes",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				in, out := c.Args().First(), outArg(c, ".png")

				colors, err := themeColors(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := renderFile(in, out, colors, c.Bool("paletted")); err != nil {
					return cli.Exit(err, 1)
				}

				if c.Bool("watch") {
					if err := watchAndRender(in, out, colors, c.Bool("paletted"), newLogger(c)); err != nil {
						return cli.Exit(err, 1)
					}
				}

				return nil
			},
		},
		{
			Name:      "export",
			Usage:     "Export a level to an editable JSON or YAML description",
			ArgsUsage: "FILE [OUT]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "format",
					Value: "json",
					Usage: "output format, json or yaml",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				level, err := decodeFile(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}

				var b []byte
				switch c.String("format") {
				case "json":
					b, err = json.MarshalIndent(level, "", "    ")
				case "yaml":
					b, err = yaml.Marshal(level)
				default:
					err = fmt.Errorf("unknown format %q", c.String("format"))
				}
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := os.WriteFile(outArg(c, "."+c.String("format")), b, 0666); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "build",
			Usage:     "Build a binary level from a JSON or YAML description",
			ArgsUsage: "FILE [OUT]",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				in := c.Args().First()
				b, err := os.ReadFile(in)
				if err != nil {
					return cli.Exit(err, 1)
				}

				level := new(eblb.Level)
				switch filepath.Ext(in) {
				case ".yaml", ".yml":
					err = yaml.Unmarshal(b, level)
				default:
					err = json.Unmarshal(b, level)
				}
				if err != nil {
					return cli.Exit(err, 1)
				}

				out, err := level.MarshalBinary()
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := os.WriteFile(outArg(c, ".eblb"), out, 0666); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "info",
			Usage:     "Print a summary of a level",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				level, err := decodeFile(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}

				fmt.Printf("objects:\t%d\n", len(level.Objects))
				fmt.Printf("doors:\t\t%d\n", len(level.Doors))
				fmt.Printf("tiles:\t\t%dx%d\n", level.Tiles.Width(), level.Tiles.Height())
				fmt.Printf("camera:\t\t%v\n", level.CameraBounds())

				return nil
			},
		},
		{
			Name:  "palette",
			Usage: "Manage tile color themes",
			Subcommands: []*cli.Command{
				{
					Name:      "import",
					Usage:     "Import a JSON color map into the theme database",
					ArgsUsage: "FILE",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:     "theme",
							Usage:    "theme name to import into",
							Required: true,
						},
					},
					Action: func(c *cli.Context) error {
						if c.NArg() < 1 {
							cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
						}

						db, err := colordb.Open(c.String("db"))
						if err != nil {
							return cli.Exit(err, 1)
						}
						defer db.Close()

						if err := db.ImportJSON(c.String("theme"), c.Args().First()); err != nil {
							return cli.Exit(err, 1)
						}

						return nil
					},
				},
				{
					Name:  "list",
					Usage: "List themes in the database",
					Action: func(c *cli.Context) error {
						db, err := colordb.Open(c.String("db"))
						if err != nil {
							return cli.Exit(err, 1)
						}
						defer db.Close()

						themes, err := db.Themes()
						if err != nil {
							return cli.Exit(err, 1)
						}
						for _, t := range themes {
							fmt.Println(t)
						}

						return nil
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
