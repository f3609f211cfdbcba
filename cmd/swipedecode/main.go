// Package main provides the CLI entrypoint for swipedecode.
//
// decode.go implements the "decode" command: it replays a captured gesture
// against a key layout and dictionary and prints the ranked candidates.
//
// render.go renders ranked decode results as a terminal table using
// go-pretty, mirroring the teacher's ranking-table conventions.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Data directories used by the CLI (relative to repository root).
const (
	layoutDir     = "data/layouts/"
	dictionaryDir = "data/dictionaries/"
)

// appFlagsMap centralizes CLI flag definitions so commands can select only
// the flags they need.
var appFlagsMap = map[string]cli.Flag{
	"layout": &cli.StringFlag{
		Name:    "layout",
		Aliases: []string{"l"},
		Usage:   "key layout file (.qkl) to decode against",
		Value:   layoutDir + "qwerty.qkl",
	},
	"dictionary": &cli.StringFlag{
		Name:    "dictionary",
		Aliases: []string{"d"},
		Usage:   "word-frequency dictionary file to decode against",
		Value:   dictionaryDir + "sample.txt",
	},
	"learned": &cli.StringFlag{
		Name:  "learned",
		Usage: "JSON file holding learned words and blacklist entries",
	},
	"topk": &cli.IntFlag{
		Name:    "topk",
		Aliases: []string{"k"},
		Usage:   "number of ranked candidates to display",
		Value:   5,
		Action: func(c *cli.Context, value int) error {
			if value < 1 {
				return fmt.Errorf("--topk must be at least 1 (got %d)", value)
			}
			return nil
		},
	},
	"deadline-ms": &cli.IntFlag{
		Name:  "deadline-ms",
		Usage: "decode deadline in milliseconds (0 disables the deadline)",
		Value: 0,
	},
}

func flagsSlice(keys ...string) []cli.Flag {
	flags := make([]cli.Flag, 0, len(keys))
	for _, k := range keys {
		if f, ok := appFlagsMap[k]; ok {
			flags = append(flags, f)
		}
	}
	return flags
}

func main() {
	app := &cli.App{
		Name:  "swipedecode",
		Usage: "Decode swipe gestures into ranked candidate words",
		Commands: []*cli.Command{
			decodeCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
