// Command textile converts Textile markup to HTML.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ragodev/textile"
	"github.com/ragodev/textile/xlog"
)

type options struct {
	xhtml         bool
	restricted    bool
	lite          bool
	noImages      bool
	noBlockTags   bool
	sanitize      bool
	imageSizing   bool
	alignClass    bool
	alignClassSet bool
	rawBlocks     bool
	rel           string
	maxSpanDepth  int
	output        string
}

func main() {
	opts := &options{maxSpanDepth: 5}
	logCfg := xlog.NewConfig()

	rootCmd := &cobra.Command{
		Use:   "textile [flags] [file]",
		Short: "Convert Textile markup to HTML",
		Long: `textile reads Textile-formatted text from a file (or stdin, when no
file is given or the file is "-") and writes the converted HTML fragment to
stdout.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(opts, logCfg, args)
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVar(&opts.xhtml, "xhtml", false, "emit XHTML instead of HTML5")
	flags.BoolVar(&opts.restricted, "restricted", false, "escape raw HTML and restrict link/image URL schemes")
	flags.BoolVar(&opts.lite, "lite", false, "only recognize paragraphs, blockquotes and block code")
	flags.BoolVar(&opts.noImages, "no-images", false, "do not render image markup")
	flags.BoolVar(&opts.noBlockTags, "no-block-tags", false, "skip block tags; apply only inline span and glyph formatting")
	flags.BoolVar(&opts.sanitize, "sanitize", false, "run the output through an HTML sanitizer")
	flags.BoolVar(&opts.imageSizing, "image-sizing", false, "fetch remote images to set width/height attributes")
	flags.BoolVar(&opts.rawBlocks, "raw-blocks", false, "set the raw-blocks option (the parser does not read it; output is unchanged)")
	flags.StringVar(&opts.rel, "rel", "", `rel="" attribute to add to every generated link`)
	flags.IntVar(&opts.maxSpanDepth, "max-span-depth", 5, "maximum nested inline span recursion depth")
	flags.StringVarP(&opts.output, "output", "o", "-", `output file ("-" for stdout)`)
	flags.VarPF(alignClassFlag{opts}, "align-class", "", "express alignment via CSS class instead of an align attribute").NoOptDefVal = "true"

	logCfg.RegisterFlags(flags)
	if err := logCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// alignClassFlag lets --align-class be passed as a bare boolean flag while
// also recording whether the user touched it at all, since Config.
// WithAlignClass distinguishes "unset" from "explicitly false".
type alignClassFlag struct{ opts *options }

func (f alignClassFlag) String() string {
	if f.opts == nil {
		return "false"
	}
	if f.opts.alignClass {
		return "true"
	}
	return "false"
}

func (f alignClassFlag) Set(s string) error {
	switch s {
	case "true", "1":
		f.opts.alignClass = true
	case "false", "0":
		f.opts.alignClass = false
	default:
		return fmt.Errorf("invalid boolean value %q for --align-class", s)
	}
	f.opts.alignClassSet = true
	return nil
}

func (f alignClassFlag) Type() string { return "bool" }

func run(opts *options, logCfg *xlog.Config, args []string) error {
	handler, err := logCfg.NewHandler(os.Stderr)
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	logger := slog.New(handler)

	var in io.Reader = os.Stdin
	source := "stdin"
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
		source = args[0]
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	logger.Debug("read input", "source", source, "bytes", len(data))

	cfg := textile.NewConfig().
		WithHTMLKind(opts.xhtml).
		WithRestricted(opts.restricted).
		WithLite(opts.lite).
		WithImages(!opts.noImages).
		WithBlockTags(!opts.noBlockTags).
		WithRawBlocks(opts.rawBlocks).
		WithImageSizing(opts.imageSizing).
		WithMaxSpanDepth(opts.maxSpanDepth)

	if opts.rel != "" {
		cfg = cfg.WithRel(opts.rel)
	}
	if opts.alignClassSet {
		cfg = cfg.WithAlignClass(opts.alignClass)
	}
	if opts.sanitize {
		cfg = cfg.WithSanitizer(textile.NewSanitizer())
	}

	html := cfg.Parse(context.Background(), string(data))
	logger.Debug("converted", "output_bytes", len(html))

	out := []byte(html + "\n")
	if opts.output == "" || opts.output == "-" {
		_, err = os.Stdout.Write(out)
	} else {
		err = os.WriteFile(opts.output, out, 0o644)
	}
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
