package main

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	toolerrors "github.com/permutest/permutest/pkgs/errors"
)

// watchAndGenerate runs the pipeline once, then regenerates the output every
// time the specification file changes. A failed regeneration is reported on
// stderr and watching continues, so a half-typed edit does not kill the loop.
func watchAndGenerate(cmd *cobra.Command, input, output, pkgName string) error {
	if err := generateOnce(cmd, input, output, pkgName); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return toolerrors.Wrap(toolerrors.ErrWatch, "starting file watcher", err)
	}
	defer watcher.Close()

	if err := watcher.Add(input); err != nil {
		return toolerrors.Wrap(toolerrors.ErrWatch, "watching "+input, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "watching %s\n", input)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Editors that save via rename drop the watch on the
			// original path; re-add it before regenerating.
			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				if err := watcher.Add(input); err != nil {
					return toolerrors.Wrap(toolerrors.ErrWatch, "re-watching "+input, err)
				}
			} else if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if err := generateOnce(cmd, input, output, pkgName); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				continue
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "regenerated %s\n", output)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
		}
	}
}
