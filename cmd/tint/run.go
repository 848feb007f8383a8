package main

import (
	"context"
	"fmt"
	"os"

	"tint/internal/driver"
	"tint/internal/ui"
)

// evalTarget evaluates a file or every *.wgsl file under a directory.
func evalTarget(ctx context.Context, path string, opts driver.Options, showUI bool) ([]*driver.Result, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		res, err := driver.EvalFile(ctx, path, opts)
		if err != nil {
			return nil, err
		}
		return []*driver.Result{res}, nil
	}

	files, err := driver.ListWGSLFiles(path)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", path, err)
	}
	if !showUI || len(files) == 0 {
		out, err := driver.EvalFiles(ctx, path, files, opts)
		if err != nil {
			return nil, err
		}
		return out.Files, nil
	}
	return evalWithUI(ctx, path, files, opts)
}

type dirOutcome struct {
	result *driver.DirResult
	err    error
}

func evalWithUI(ctx context.Context, dir string, files []string, opts driver.Options) ([]*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.EvalFiles(ctx, dir, files, optsCopy)
		outcomeCh <- dirOutcome{result: res, err: err}
		close(events)
	}()

	uiErr := ui.Run("checking "+dir, dir, files, events)
	// the view may quit early; later events must not block the evaluation
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if outcome.err != nil {
		return nil, outcome.err
	}
	if uiErr != nil {
		return nil, uiErr
	}
	return outcome.result.Files, nil
}
