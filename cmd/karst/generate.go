package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/karstdb/karst/compiler/gen"
)

type generateOptions struct {
	schema     []string
	target     string
	pkg        string
	header     string
	style      string
	prefixes   []string
	strict     bool
	workers    int
	buildFlags []string
	watch      bool
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate [flags] [patterns...]",
		Short: "Generate entity metadata and support code for model packages",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := loadFileConfig(root.configPath)
			if err != nil {
				return err
			}
			opts.merge(fc, args)

			log, err := newLogger(root.verbose)
			if err != nil {
				return err
			}
			defer log.Sync()

			if len(opts.schema) == 0 {
				return fmt.Errorf("no model packages: pass patterns or set schema in %s", defaultConfigPath)
			}
			if opts.watch {
				return opts.watchLoop(log)
			}
			return opts.runOnce(log)
		},
	}

	cmd.Flags().StringVar(&opts.target, "target", "", "output directory for generated files")
	cmd.Flags().StringVar(&opts.pkg, "package", "", "output package name (default: target base name)")
	cmd.Flags().StringVar(&opts.header, "header", "", "extra header comment for generated files")
	cmd.Flags().StringVar(&opts.style, "style", "", "accessor naming style: bean or fluent")
	cmd.Flags().StringSliceVar(&opts.prefixes, "strip-prefix", nil, "type name prefixes stripped for default table names")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "treat error diagnostics as fatal")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "parallel emission workers (0 = one per CPU)")
	cmd.Flags().StringSliceVar(&opts.buildFlags, "build-flags", nil, "extra build flags for the model loader")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "watch the model packages and regenerate on change")
	return cmd
}

// merge folds the file configuration under the flag values: explicit
// flags and arguments win.
func (o *generateOptions) merge(fc *fileConfig, args []string) {
	o.schema = args
	if len(o.schema) == 0 {
		o.schema = fc.Schema
	}
	if o.target == "" {
		o.target = fc.Target
	}
	if o.pkg == "" {
		o.pkg = fc.Package
	}
	if o.header == "" {
		o.header = fc.Header
	}
	if o.style == "" {
		o.style = fc.Style
	}
	if len(o.prefixes) == 0 {
		o.prefixes = fc.Prefixes
	}
	if !o.strict {
		o.strict = fc.Strict
	}
	if o.workers == 0 {
		o.workers = fc.Workers
	}
	if len(o.buildFlags) == 0 {
		o.buildFlags = fc.BuildFlags
	}
}

func (o *generateOptions) genOptions() []gen.Option {
	genOpts := []gen.Option{
		gen.WithStrict(o.strict),
	}
	if o.target != "" {
		genOpts = append(genOpts, gen.WithTarget(o.target))
	}
	if o.pkg != "" {
		genOpts = append(genOpts, gen.WithPackage(o.pkg))
	}
	if o.header != "" {
		genOpts = append(genOpts, gen.WithHeader(o.header))
	}
	if o.style != "" {
		genOpts = append(genOpts, gen.WithNameStyle(o.style))
	}
	if len(o.prefixes) > 0 {
		genOpts = append(genOpts, gen.WithStripPrefixes(o.prefixes...))
	}
	if o.workers > 0 {
		genOpts = append(genOpts, gen.WithWorkers(o.workers))
	}
	if len(o.buildFlags) > 0 {
		genOpts = append(genOpts, gen.WithBuildFlags(o.buildFlags...))
	}
	return genOpts
}

func (o *generateOptions) runOnce(log *zap.Logger) error {
	cfg, err := gen.NewConfig(o.genOptions()...)
	if err != nil {
		return err
	}
	proc, err := gen.NewProcessor(cfg, log)
	if err != nil {
		return err
	}

	start := time.Now()
	diags, err := proc.Run(o.schema...)
	printDiagnostics(diags)
	if err != nil {
		return err
	}
	log.Info("generation complete",
		zap.Strings("patterns", o.schema),
		zap.String("target", o.target),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// watchLoop regenerates whenever a watched model directory changes.
// Events are debounced so one editor save triggers one run.
func (o *generateOptions) watchLoop(log *zap.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, dir := range o.watchDirs() {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		log.Info("watching", zap.String("dir", dir))
	}

	if err := o.runOnce(log); err != nil {
		log.Warn("generation failed, waiting for changes", zap.Error(err))
	}

	var timer *time.Timer
	pending := make(chan struct{}, 1)
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(ev.Name, ".go") {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(250*time.Millisecond, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", zap.Error(err))
		case <-pending:
			if err := o.runOnce(log); err != nil {
				log.Warn("generation failed, waiting for changes", zap.Error(err))
			}
		}
	}
}

// watchDirs maps the schema patterns to watchable directories. Only
// plain directory patterns can be watched; recursive patterns fall
// back to their root.
func (o *generateOptions) watchDirs() []string {
	dirs := make([]string, 0, len(o.schema))
	for _, p := range o.schema {
		dir := strings.TrimSuffix(p, "/...")
		dir = strings.TrimSuffix(dir, "/")
		if dir == "" {
			dir = "."
		}
		if st, err := os.Stat(dir); err == nil && st.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

var (
	errLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	warnLabel = color.New(color.FgYellow, color.Bold).SprintFunc()
	posLabel  = color.New(color.Faint).SprintFunc()
)

// printDiagnostics renders findings to stderr, errors in red and
// warnings in yellow.
func printDiagnostics(diags []gen.Diagnostic) {
	for _, d := range diags {
		label := warnLabel("warning")
		if d.Severity == gen.SeverityError {
			label = errLabel("error")
		}
		subject := d.Entity
		if d.Property != "" {
			subject += "." + d.Property
		}
		if subject != "" {
			subject += ": "
		}
		fmt.Fprintf(os.Stderr, "%s: %s%s", label, subject, d.Message)
		if d.Pos != "" {
			fmt.Fprintf(os.Stderr, " %s", posLabel("("+d.Pos+")"))
		}
		fmt.Fprintln(os.Stderr)
	}
}
