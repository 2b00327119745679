// Command jsmorph applies codemods to JavaScript files.
//
//	jsmorph -t strip-debug [-t ...] [--rename from:to] [-w] [--watch] file.js...
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jsmorph/jsmorph/codemod"
	"github.com/jsmorph/jsmorph/transform/renameident"
	_ "github.com/jsmorph/jsmorph/transform/stripdebug"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		names   []string
		renames []string
		write   bool
		compact bool
		watch   bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:          "jsmorph [files...]",
		Short:        "apply codemods to JavaScript files",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(verbose)
			if err != nil {
				return err
			}
			defer log.Sync()

			ts, err := resolveTransforms(names, renames)
			if err != nil {
				return err
			}

			run := func() error {
				for _, file := range args {
					if err := applyFile(file, ts, write, compact, log); err != nil {
						return err
					}
				}
				return nil
			}
			if err := run(); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return watchFiles(args, run, log)
		},
	}

	cmd.Flags().StringSliceVarP(&names, "transform", "t", nil, "registered transform to apply, in order")
	cmd.Flags().StringSliceVar(&renames, "rename", nil, "identifier rename in from:to form")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite files in place instead of printing")
	cmd.Flags().BoolVar(&compact, "compact", false, "render output on a single line")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-apply transforms when an input file changes")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func resolveTransforms(names, renames []string) ([]codemod.Transform, error) {
	var ts []codemod.Transform
	for _, name := range names {
		t := codemod.LookupTransform(name)
		if t == nil {
			return nil, fmt.Errorf("unknown transform %q (registered: %s)",
				name, strings.Join(codemod.TransformNames(), ", "))
		}
		ts = append(ts, t)
	}
	for _, r := range renames {
		from, to, ok := strings.Cut(r, ":")
		if !ok || from == "" || to == "" {
			return nil, fmt.Errorf("bad rename %q, want from:to", r)
		}
		ts = append(ts, renameident.New(from, to))
	}
	if len(ts) == 0 {
		return nil, fmt.Errorf("no transforms selected (registered: %s)",
			strings.Join(codemod.TransformNames(), ", "))
	}
	return ts, nil
}

func applyFile(file string, ts []codemod.Transform, write, compact bool, log *zap.Logger) error {
	src, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	opts := []codemod.Option{codemod.WithFilename(file)}
	if compact {
		opts = append(opts, codemod.WithCompactOutput())
	}
	res, err := codemod.Run(string(src), ts, log, opts...)
	if err != nil {
		return err
	}
	if !res.Changed {
		log.Debug("unchanged", zap.String("file", file))
		return nil
	}
	if write {
		log.Info("rewriting", zap.String("file", file))
		return os.WriteFile(file, []byte(res.Output), 0o644)
	}
	fmt.Print(res.Output)
	if !strings.HasSuffix(res.Output, "\n") {
		fmt.Println()
	}
	return nil
}

func watchFiles(files []string, run func() error, log *zap.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	for _, file := range files {
		if err := watcher.Add(file); err != nil {
			return err
		}
	}
	log.Info("watching", zap.Strings("files", files))
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			log.Debug("change detected", zap.String("file", ev.Name))
			if err := run(); err != nil {
				log.Error("transform failed", zap.Error(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("watch error", zap.Error(err))
		}
	}
}
