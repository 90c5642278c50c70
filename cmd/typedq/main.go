// typedq generates typed query companions for persistence-capable
// structs.
//
// Usage:
//
//	typedq [-config typedq.yaml] [-mode FIELD|PROPERTY] [-depth N] [-geo] [-target dir] [-watch] patterns...
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/syssam/typedq/compiler/gen"
	"github.com/syssam/typedq/compiler/load"
)

const version = "0.1.0"

func main() {
	var (
		configPath  = flag.String("config", "", "path to a typedq.yaml configuration file")
		mode        = flag.String("mode", "", "member access mode, FIELD or PROPERTY")
		depth       = flag.Int("depth", 0, "eager reference expansion depth (default 5)")
		geo         = flag.Bool("geo", false, "classify go-geom and orb member types as geometry expressions")
		target      = flag.String("target", "", "output directory (default: next to each source package)")
		header      = flag.String("header", "", "extra header comment for generated files")
		watch       = flag.Bool("watch", false, "regenerate when watched package sources change")
		verbose     = flag.Bool("v", false, "enable debug logging")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("typedq %s\n", version)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	patterns := flag.Args()
	var opts []gen.Option
	if *configPath != "" {
		fc, err := gen.LoadFileConfig(*configPath)
		if err != nil {
			fatal(err)
		}
		fileOpts, err := fc.Options()
		if err != nil {
			fatal(err)
		}
		opts = append(opts, fileOpts...)
		if len(patterns) == 0 {
			patterns = fc.Patterns
		}
	}
	// Flags override the file.
	if *mode != "" {
		opts = append(opts, gen.WithMode(gen.ParseAccessMode(*mode)))
	}
	if *depth != 0 {
		opts = append(opts, gen.WithDepth(*depth))
	}
	if *geo {
		opts = append(opts, gen.WithGeospatial(true))
	}
	if *target != "" {
		opts = append(opts, gen.WithTarget(*target))
	}
	if *header != "" {
		opts = append(opts, gen.WithHeader(*header))
	}

	if len(patterns) == 0 {
		fmt.Fprintln(os.Stderr, "error: no package patterns; pass them as arguments or in the config file")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, patterns); err != nil {
		fatal(err)
	}
	if *watch {
		if err := watchLoop(ctx, cfg, patterns); err != nil && !errors.Is(err, context.Canceled) {
			fatal(err)
		}
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

// run loads the configured patterns and generates one companion file
// per candidate type found.
func run(ctx context.Context, cfg *gen.Config, patterns []string) error {
	loader := &load.Config{Patterns: patterns, BuildFlags: cfg.BuildFlags}
	schemas, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	if len(schemas) == 0 {
		slog.Warn("no persistence-capable types matched", "patterns", patterns)
		return nil
	}
	graph, err := gen.NewGraph(cfg, schemas...)
	if err != nil {
		return err
	}
	g := gen.NewGenerator(graph)
	if err := g.Generate(ctx); err != nil {
		return err
	}
	m := g.Metrics()
	slog.Info("round complete", "types", len(schemas), "files", m.Companions, "bytes", m.Bytes)
	return nil
}

// watchLoop regenerates the round whenever a watched source file
// changes. Companions land next to the sources in the default layout,
// so files carrying a generated-code marker are ignored.
func watchLoop(ctx context.Context, cfg *gen.Config, patterns []string) error {
	loader := &load.Config{Patterns: patterns, BuildFlags: cfg.BuildFlags}
	schemas, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dirs := make(map[string]struct{})
	for _, s := range schemas {
		if s.Dir == "" {
			continue
		}
		if _, ok := dirs[s.Dir]; ok {
			continue
		}
		dirs[s.Dir] = struct{}{}
		if err := watcher.Add(s.Dir); err != nil {
			return fmt.Errorf("watch %s: %w", s.Dir, err)
		}
		slog.Info("watching", "dir", s.Dir)
	}
	if len(dirs) == 0 {
		return errors.New("watch: no source directories resolved")
	}

	debounce := time.NewTimer(time.Hour)
	debounce.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			slog.Debug("source changed", "file", ev.Name, "op", ev.Op.String())
			debounce.Reset(300 * time.Millisecond)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "err", err)
		case <-debounce.C:
			if err := run(ctx, cfg, patterns); err != nil {
				slog.Error("regeneration failed", "err", err)
			}
		}
	}
}

// relevant filters watch events down to handwritten Go source changes.
func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name := ev.Name
	if filepath.Ext(name) != ".go" || strings.HasSuffix(name, "_test.go") {
		return false
	}
	return !generatedFile(name)
}

// generatedFile reports whether the file opens with a generated-code
// marker in its leading comment block.
func generatedFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	s := bufio.NewScanner(f)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "//") {
			return false
		}
		if strings.HasPrefix(line, "// Code generated") && strings.HasSuffix(line, "DO NOT EDIT.") {
			return true
		}
	}
	return false
}
