package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/rbscholtus/swipedecode/internal/gesture"
	"github.com/rbscholtus/swipedecode/internal/lexicon"
)

// decodeCommand replays a captured gesture file against a layout and
// dictionary and prints the ranked candidates.
var decodeCommand = &cli.Command{
	Name:      "decode",
	Aliases:   []string{"d"},
	Usage:     "Replay a captured gesture and print ranked candidates",
	ArgsUsage: "<gesture.json>",
	Flags:     flagsSlice("layout", "dictionary", "learned", "topk", "deadline-ms"),
	Before:    validateDecodeFlags,
	Action:    decodeAction,
}

func validateDecodeFlags(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one gesture file argument")
	}
	return nil
}

// capturedPoint is the on-disk JSON shape of one raw touch sample.
type capturedPoint struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	T int64   `json:"t"`
}

func loadGestureFile(path string) ([]gesture.Point, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading gesture file: %w", err)
	}
	var captured []capturedPoint
	if err := json.Unmarshal(data, &captured); err != nil {
		return nil, fmt.Errorf("parsing gesture file %s: %w", path, err)
	}
	points := make([]gesture.Point, len(captured))
	for i, p := range captured {
		points[i] = gesture.Point{X: p.X, Y: p.Y, T: p.T}
	}
	return points, nil
}

func decodeAction(c *cli.Context) error {
	gesturePath := c.Args().Get(0)

	raw, err := loadGestureFile(gesturePath)
	if err != nil {
		return err
	}

	layout, err := gesture.NewLayoutFromFile(c.String("layout"))
	if err != nil {
		return fmt.Errorf("loading layout: %w", err)
	}

	dict, err := lexicon.LoadDictionaryFile(c.String("dictionary"))
	if err != nil {
		return fmt.Errorf("loading dictionary: %w", err)
	}

	var learned *lexicon.LearnedStore
	if learnedPath := c.String("learned"); learnedPath != "" {
		learned, err = lexicon.LoadLearnedStoreJSON(learnedPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading learned store: %w", err)
		}
		if learned == nil {
			learned = lexicon.NewLearnedStore()
		}
	}

	opts := gesture.DecodeOptions{TopK: c.Int("topk")}
	if ms := c.Int("deadline-ms"); ms > 0 {
		opts.Deadline = time.Now().Add(time.Duration(ms) * time.Millisecond)
	}

	decoder := gesture.NewDecoder()

	start := time.Now()
	var result gesture.RankedResult
	if learned != nil {
		result, err = decoder.Decode(context.Background(), raw, layout, dict, learned, opts)
	} else {
		result, err = decoder.Decode(context.Background(), raw, layout, dict, nil, opts)
	}
	elapsed := time.Since(start)

	if err != nil {
		var de *gesture.DecodeError
		if errors.As(err, &de) && len(de.Partial) > 0 {
			renderResult(gesture.RankedResult{Candidates: de.Partial}, elapsed)
			return fmt.Errorf("decode did not finish cleanly: %w", err)
		}
		return err
	}

	renderResult(result, elapsed)
	return nil
}
