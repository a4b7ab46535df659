// Command bit is the outer driver spec §6 describes: it canonicalizes a
// list of source files, loads and de-duplicates them, runs the engine's
// execute pipeline, and writes either the emitted C translation unit to
// stdout or a surfaced error to stderr with the documented exit codes. The
// emitted C is not compiled or run here.
//
// Grounded on the teacher's cli/main.go: a single cobra root command,
// PersistentFlags for every CLI knob, RunE returning an error the root
// Execute call formats once at the top.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/bitlang/bit/engine/arena"
	"github.com/bitlang/bit/engine/cemit"
	"github.com/bitlang/bit/engine/compile"
	"github.com/bitlang/bit/engine/diag"
	"github.com/bitlang/bit/engine/source"
	"github.com/bitlang/bit/engine/writer"
	"github.com/bitlang/bit/internal/config"
	"github.com/bitlang/bit/internal/debugdump"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var (
		verbose    bool
		watch      bool
		dumpNodes  bool
		dumpCode   bool
		tabSize    int
		configPath string
	)

	rootCmd := &cobra.Command{
		Use:           "bit <file>...",
		Short:         "Run bit source files",
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(verbose)
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if tabSize > 0 {
				cfg.TabSize = tabSize
			}

			paths, err := canonicalizePaths(args)
			if err != nil {
				return err
			}

			exitCode, err := execute(cmd.OutOrStdout(), paths, cfg, log, dumpNodes, dumpCode)
			if err != nil {
				return err
			}
			if exitCode != 0 {
				return fmt.Errorf("execution failed")
			}

			if watch {
				return watchAndRerun(cmd.OutOrStdout(), paths, cfg, log, dumpNodes, dumpCode)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "raise log verbosity to debug (scheduler tracing)")
	rootCmd.PersistentFlags().BoolVar(&watch, "watch", false, "re-run when a source file changes")
	rootCmd.PersistentFlags().BoolVar(&dumpNodes, "dump-nodes", false, "dump the settled node tree as text to stderr, plus the size and blake2b-256 hash of its CBOR encoding")
	rootCmd.PersistentFlags().BoolVar(&dumpCode, "dump-code", false, "print the size and blake2b-256 hash of the lowered code tree's CBOR encoding to stderr")
	rootCmd.PersistentFlags().IntVar(&tabSize, "tab-size", 0, "tab width to store in the run's config over bit.yaml's; sources are still loaded with the default tab width of 4")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "bit.yaml", "path to the project config file")

	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n\n", err)
		return 1
	}
	return 0
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// canonicalizePaths resolves each argument against the current directory
// and de-duplicates and sorts the result, matching spec §6's "canonicalizes
// each path against the current directory... de-duplicates and sorts by
// source ordering."
func canonicalizePaths(args []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, a := range args {
		abs, err := filepath.Abs(a)
		if err != nil {
			return nil, fmt.Errorf("resolving %q: %w", a, err)
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		out = append(out, abs)
	}
	sort.Strings(out)
	return out, nil
}

// execute loads paths as Sources, runs the engine, and writes the C
// translation unit emitted for the settled program to stdout (the CLI's
// stand-in for spec §6's execute(sources, {show_output: true})). Arena.Exhausted
// and SymbolTable.Full are process-wide singleton failures the engine
// treats as fatal by panicking rather than returning an error (spec §7:
// "abort process"). execute recovers one just long enough to print it
// through the same *diag.Error formatting every other failure uses,
// before the process still exits non-zero.
func execute(stdout io.Writer, paths []string, cfg config.Config, log *slog.Logger, dumpNodes, dumpCode bool) (exitCode int, err error) {
	defer func() {
		if r := recover(); r != nil {
			if de, ok := r.(*diag.Error); ok {
				exitCode, err = 1, de
				return
			}
			panic(r)
		}
	}()

	baseDir, err := os.Getwd()
	if err != nil {
		return 1, err
	}
	smap, err := source.NewSourceMap(baseDir)
	if err != nil {
		return 1, err
	}

	srcs := make([]source.Source, 0, len(paths))
	for _, p := range paths {
		s, err := smap.LoadFile(p)
		if err != nil {
			return 1, diag.Newf(diag.IOLoadFailed, "%v", err)
		}
		srcs = append(srcs, s)
	}

	a := arena.New(cfg.ArenaSize)
	result, err := compile.RunWithLogger(a, srcs, log)
	if err != nil {
		return 1, err
	}

	if dumpNodes {
		w := writer.New(os.Stderr)
		if err := debugdump.WriteText(result.Program, w); err != nil {
			return 1, err
		}
		if err := writeNodesDump(result); err != nil {
			return 1, err
		}
	}
	if dumpCode {
		if err := writeCodeDump(result); err != nil {
			return 1, err
		}
	}

	fmt.Fprint(stdout, cemit.Emit(result.Code))
	return 0, nil
}

func writeNodesDump(result *compile.Result) error {
	blob, hash, err := debugdump.Dump(result.Program)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "node-tree dump: %d bytes, blake2b-256=%x\n", len(blob), hash)
	return nil
}

func writeCodeDump(result *compile.Result) error {
	blob, hash, err := debugdump.DumpCode(result.Code)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "code-tree dump: %d bytes, blake2b-256=%x\n", len(blob), hash)
	return nil
}

// watchAndRerun re-runs execute whenever one of paths changes on disk,
// matching spec §6's "CLI (outer driver, not the core)" scoping: the
// engine itself has no notion of watching.
func watchAndRerun(stdout io.Writer, paths []string, cfg config.Config, log *slog.Logger, dumpNodes, dumpCode bool) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer fw.Close()

	for _, p := range paths {
		if err := fw.Add(p); err != nil {
			return fmt.Errorf("watching %q: %w", p, err)
		}
	}

	for {
		select {
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			log.Debug("source changed, re-running", "path", ev.Name)
			if _, err := execute(stdout, paths, cfg, log, dumpNodes, dumpCode); err != nil {
				fmt.Fprintf(os.Stderr, "%s\n\n", err)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "err", err)
		}
	}
}
