// Package cli implements the wgslfmt command line interface.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"bennypowers.dev/wgslfmt/internal/collections"
	"bennypowers.dev/wgslfmt/internal/config"
	"bennypowers.dev/wgslfmt/internal/doc"
	"bennypowers.dev/wgslfmt/internal/format"
	"bennypowers.dev/wgslfmt/internal/log"
	"bennypowers.dev/wgslfmt/internal/version"
	"bennypowers.dev/wgslfmt/lsp"
)

// ErrCheckFailed reports that --check found at least one file whose
// content differs from its canonical formatting.
var ErrCheckFailed = errors.New("files are not formatted")

type options struct {
	write       bool
	list        bool
	check       bool
	printWidth  int
	indentWidth int
}

// NewRootCmd builds the wgslfmt command tree.
func NewRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "wgslfmt [flags] [path...]",
		Short: "Format WGSL source files",
		Long: `wgslfmt formats WGSL source according to the canonical style, and
reformats WGSL snippets embedded in JavaScript, TypeScript, and HTML files.

By default, wgslfmt prints the formatted source to stdout.
Use -w to write the result back to the source file.
Use -l to list files that would be changed.
Use --check to exit non-zero when any file is not formatted.`,
		Example: `  # Format a file and print to stdout
  wgslfmt shader.wgsl

  # Format files in place
  wgslfmt -w shader.wgsl pipeline.ts

  # Format every shader under src, in place
  wgslfmt -w 'src/**/*.wgsl'

  # Verify formatting in CI
  wgslfmt --check 'src/**/*.wgsl'`,
		Args:          cobra.MinimumNArgs(1),
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := layoutOptions(cmd, opts)
			if err != nil {
				return err
			}
			return run(args, opts, layout)
		},
	}

	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "Write result to source file instead of stdout")
	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "List files whose formatting differs")
	cmd.Flags().BoolVar(&opts.check, "check", false, "Exit non-zero if any file is not formatted")
	cmd.Flags().IntVar(&opts.printWidth, "print-width", 0, "Maximum line width (default from project config, else 80)")
	cmd.Flags().IntVar(&opts.indentWidth, "indent-width", 0, "Spaces per indent level (default from project config, else 2)")

	cmd.AddCommand(lspCmd())

	return cmd
}

// Execute runs the CLI, mapping errors to exit codes.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		if !errors.Is(err, ErrCheckFailed) {
			fmt.Fprintf(os.Stderr, "wgslfmt: %v\n", err)
		}
		os.Exit(1)
	}
}

func lspCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Run the wgslfmt language server over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := lsp.NewServer()
			if err != nil {
				return fmt.Errorf("failed to create LSP server: %w", err)
			}
			defer func() {
				if cerr := server.Close(); cerr != nil {
					log.Warn("Server close: %v", cerr)
				}
			}()
			return server.RunStdio()
		},
	}
}

// layoutOptions resolves the effective layout options: explicit flags win
// over project config, which wins over the defaults.
func layoutOptions(cmd *cobra.Command, opts options) (doc.Options, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return doc.DefaultOptions(), err
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return doc.DefaultOptions(), err
	}

	layout := cfg.Options()
	if cmd.Flags().Changed("print-width") && opts.printWidth > 0 {
		layout.PrintWidth = opts.printWidth
	}
	if cmd.Flags().Changed("indent-width") && opts.indentWidth > 0 {
		layout.IndentWidth = opts.indentWidth
	}
	return layout, nil
}

func run(args []string, opts options, layout doc.Options) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no files matched")
	}

	checkFailed := false
	for _, file := range files {
		changed, err := formatFile(file, opts, layout)
		if err != nil {
			return fmt.Errorf("formatting %s: %w", file, err)
		}
		if changed && opts.check {
			checkFailed = true
		}
	}

	if checkFailed {
		return ErrCheckFailed
	}
	return nil
}

// collectFiles expands the path arguments: directories are walked for
// .wgsl files, glob patterns are expanded, plain files pass through.
// Overlapping arguments yield each file once, in first-seen order.
func collectFiles(paths []string) ([]string, error) {
	var files []string
	seen := collections.NewSet[string]()
	add := func(matched ...string) {
		for _, file := range matched {
			if !seen.Has(file) {
				seen.Add(file)
				files = append(files, file)
			}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		switch {
		case err == nil && info.IsDir():
			dirFiles, err := walkDir(path)
			if err != nil {
				return nil, err
			}
			add(dirFiles...)
		case err == nil:
			add(path)
		default:
			// Not an existing path: treat as a glob pattern
			matches, err := doublestar.FilepathGlob(path)
			if err != nil {
				return nil, fmt.Errorf("bad pattern %q: %w", path, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("no files match %q", path)
			}
			add(matches...)
		}
	}

	return files, nil
}

func walkDir(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".wgsl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

// formatFile formats one file and reports whether its content differs
// from the canonical output.
func formatFile(path string, opts options, layout doc.Options) (bool, error) {
	source, err := os.ReadFile(path) //nolint:gosec // G304: formatting user-named files is the whole point
	if err != nil {
		return false, err
	}

	formatted, err := format.FormatFile(path, string(source), layout)
	if err != nil {
		return false, err
	}

	changed := string(source) != formatted

	switch {
	case opts.check:
		if changed {
			fmt.Println(path)
		}
	case opts.list && !opts.write:
		if changed {
			fmt.Println(path)
		}
	case opts.write:
		if changed {
			if err := os.WriteFile(path, []byte(formatted), 0644); err != nil { //nolint:gosec // G306: match the permissions fmt tools use
				return changed, err
			}
			if opts.list {
				fmt.Println(path)
			}
		}
	default:
		fmt.Print(formatted)
	}

	return changed, nil
}
