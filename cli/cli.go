package cli

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/go-partial/partial"
)

const name = "partial"

const version = "0.0.0"

var revision = "HEAD"

const (
	exitCodeOK = iota
	exitCodeErr
	exitCodeFlagParseErr
	exitCodeSelectorParseErr
	exitCodeInputParseErr
)

// Run executes the command and returns its exit code.
func Run() int {
	return (&cli{
		inStream:  os.Stdin,
		outStream: os.Stdout,
		errStream: os.Stderr,
	}).run(os.Args[1:])
}

type cli struct {
	inStream  io.Reader
	outStream io.Writer
	errStream io.Writer

	outputCompact bool
	outputColor   bool
	outputMono    bool
	outputYAML    bool
	inputYAML     bool
	ignoreCase    bool
	tolerant      bool
	timeFormat    string
	maxDepth      int
}

func (cli *cli) run(args []string) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.errStream)
	fs.Usage = func() {
		fs.SetOutput(cli.outStream)
		fmt.Fprintf(cli.outStream, `%[1]s - filter JSON by a field selector

Version: %s (rev: %s/%s)

Synopsis:
    %% echo '{"kind":"list","items":[{"id":1,"title":"t","extra":"x"}]}' | %[1]s 'kind,items(id,title)'

Options:
`, name, version, revision, runtime.Version())
		fs.PrintDefaults()
	}
	var showVersion bool
	fs.BoolVar(&cli.outputCompact, "c", false, "output without pretty-printing")
	fs.BoolVar(&cli.outputColor, "C", false, "output with colors even if the output is not a tty")
	fs.BoolVar(&cli.outputMono, "M", false, "output without colors")
	fs.BoolVar(&cli.outputYAML, "yaml-output", false, "output in YAML format")
	fs.BoolVar(&cli.inputYAML, "yaml-input", false, "read input as YAML format")
	fs.BoolVar(&cli.ignoreCase, "i", false, "match field names case-insensitively")
	fs.BoolVar(&cli.tolerant, "t", false, "ignore selector syntax errors and output everything")
	fs.StringVar(&cli.timeFormat, "time-format", "", "strftime format for time values")
	fs.IntVar(&cli.maxDepth, "max-depth", 0, "maximum selector nesting depth")
	fs.BoolVar(&showVersion, "v", false, "print version")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return exitCodeOK
		}
		return exitCodeFlagParseErr
	}
	if showVersion {
		fmt.Fprintf(cli.outStream, "%s %s (rev: %s/%s)\n", name, version, revision, runtime.Version())
		return exitCodeOK
	}
	args = fs.Args()
	var selector string
	switch len(args) {
	case 0:
	case 1:
		selector = args[0]
	default:
		fmt.Fprintf(cli.errStream, "%s: too many arguments\n", name)
		return exitCodeFlagParseErr
	}
	var opts []partial.Option
	if cli.ignoreCase {
		opts = append(opts, partial.IgnoreCase())
	}
	if cli.tolerant {
		opts = append(opts, partial.IgnoreErrors())
	}
	if cli.maxDepth > 0 {
		opts = append(opts, partial.MaxDepth(cli.maxDepth))
	}
	if cli.timeFormat != "" {
		opts = append(opts, partial.TimeFormat(cli.timeFormat))
	}
	filter, err := partial.New(selector, opts...)
	if err != nil {
		var perr *partial.ParseError
		if errors.As(err, &perr) {
			fmt.Fprintf(cli.errStream, "%s: %s\n", name, &selectorParseError{selector, perr})
			return exitCodeSelectorParseErr
		}
		fmt.Fprintf(cli.errStream, "%s: %s\n", name, err)
		return exitCodeErr
	}
	if err := filter.Err(); err != nil {
		fmt.Fprintf(cli.errStream, "%s: ignoring invalid selector: %s\n", name, err)
	}
	var v any
	if cli.inputYAML {
		if err := yaml.NewDecoder(cli.inStream).Decode(&v); err != nil {
			fmt.Fprintf(cli.errStream, "%s: invalid yaml: %s\n", name, err)
			return exitCodeInputParseErr
		}
		v = normalizeYAML(v)
	} else {
		dec := json.NewDecoder(cli.inStream)
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			fmt.Fprintf(cli.errStream, "%s: invalid json: %s\n", name, err)
			return exitCodeInputParseErr
		}
	}
	return cli.output(filter, v)
}

func (cli *cli) output(filter *partial.Filter, v any) int {
	if cli.outputCompact && !cli.outputYAML {
		bs, err := filter.Marshal(v)
		if err != nil {
			fmt.Fprintf(cli.errStream, "%s: %s\n", name, err)
			return exitCodeErr
		}
		cli.outStream.Write(bs)
		cli.outStream.Write([]byte{'\n'})
		return exitCodeOK
	}
	filtered := filter.Apply(v)
	if cli.outputYAML {
		filtered = normalizeNumbers(filtered)
	}
	bs, err := cli.createMarshaler().Marshal(filtered)
	if err != nil {
		fmt.Fprintf(cli.errStream, "%s: %s\n", name, err)
		return exitCodeErr
	}
	cli.outStream.Write(bs)
	if !cli.outputYAML {
		cli.outStream.Write([]byte{'\n'})
	}
	return exitCodeOK
}

func (cli *cli) createMarshaler() marshaler {
	if cli.outputYAML {
		return yamlFormatter()
	}
	if cli.outputColor || !cli.outputMono && isTTY(cli.outStream) {
		return jsonFormatter()
	}
	return &indentMarshaler{}
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
