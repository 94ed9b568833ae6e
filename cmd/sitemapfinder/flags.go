package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
)

// AppFlags holds the parsed command line.
type AppFlags struct {
	InputFile        string
	OutputFile       string
	Format           string
	TimeoutSecs      int
	Concurrency      int
	GlobalConfigFile string
	Verbose          bool

	// set records which flags were given explicitly so they override the config file.
	set map[string]bool
}

// IsSet reports whether the named option was given on the command line.
// Aliases count for their long name.
func (f AppFlags) IsSet(name string) bool {
	return f.set[name]
}

var (
	errMissingInput  = errors.New("an input file with one domain per line is required")
	errExtraArgument = errors.New("only one input file may be given")
)

// ParseFlags parses args (without the program name). The input file may be given
// positionally or with -input; flags may appear on either side of it.
func ParseFlags(args []string, output io.Writer) (AppFlags, error) {
	fs := flag.NewFlagSet("sitemapfinder", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintln(output, "Usage: sitemapfinder [flags] <input_file>")
		fmt.Fprintln(output, "Find sitemaps for a list of domains over both HTTP and HTTPS.")
		fs.PrintDefaults()
	}

	inputFile := fs.String("input", "", "Path to a text file containing one domain per line")
	inputFileAlias := fs.String("i", "", "Alias for -input")

	outputFile := fs.String("output", "", "Output file name without extension (default \"sitemaps_output\")")
	outputFileAlias := fs.String("o", "", "Alias for -output")

	format := fs.String("format", "", "Output format: json, csv, parquet or xlsx (default \"json\")")
	formatAlias := fs.String("f", "", "Alias for -format")

	timeout := fs.Int("timeout", 0, "Request timeout in seconds (default 10)")
	timeoutAlias := fs.Int("t", 0, "Alias for -timeout")

	concurrency := fs.Int("concurrency", 0, "Number of domains processed concurrently (default 5)")
	concurrencyAlias := fs.Int("c", 0, "Alias for -concurrency")

	globalConfigFile := fs.String("globalconfig", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := fs.String("gc", "", "Alias for -globalconfig")

	verbose := fs.Bool("verbose", false, "Print a per-domain probe tree to stdout")
	verboseAlias := fs.Bool("v", false, "Alias for -verbose")

	if err := fs.Parse(args); err != nil {
		return AppFlags{}, err
	}
	// flag stops at the first non-flag argument; keep parsing what follows it.
	var positional []string
	for fs.NArg() > 0 {
		positional = append(positional, fs.Arg(0))
		if err := fs.Parse(fs.Args()[1:]); err != nil {
			return AppFlags{}, err
		}
	}

	given := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { given[f.Name] = true })

	flags := AppFlags{set: make(map[string]bool)}

	flags.InputFile = pick(flags.set, "input", given, "i", *inputFile, *inputFileAlias)
	flags.OutputFile = pick(flags.set, "output", given, "o", *outputFile, *outputFileAlias)
	flags.Format = pick(flags.set, "format", given, "f", *format, *formatAlias)
	flags.GlobalConfigFile = pick(flags.set, "globalconfig", given, "gc", *globalConfigFile, *globalConfigFileAlias)

	if given["timeout"] {
		flags.TimeoutSecs = *timeout
		flags.set["timeout"] = true
	} else if given["t"] {
		flags.TimeoutSecs = *timeoutAlias
		flags.set["timeout"] = true
	}

	if given["concurrency"] {
		flags.Concurrency = *concurrency
		flags.set["concurrency"] = true
	} else if given["c"] {
		flags.Concurrency = *concurrencyAlias
		flags.set["concurrency"] = true
	}

	flags.Verbose = *verbose || *verboseAlias

	if flags.InputFile == "" && len(positional) > 0 {
		flags.InputFile = positional[0]
		flags.set["input"] = true
		positional = positional[1:]
	}
	if len(positional) > 0 {
		fs.Usage()
		return AppFlags{}, fmt.Errorf("%w: %q", errExtraArgument, positional[0])
	}
	if flags.InputFile == "" {
		fs.Usage()
		return AppFlags{}, errMissingInput
	}

	if flags.IsSet("timeout") && flags.TimeoutSecs < 1 {
		return AppFlags{}, fmt.Errorf("timeout must be at least 1 second, got %d", flags.TimeoutSecs)
	}
	if flags.IsSet("concurrency") && flags.Concurrency < 1 {
		return AppFlags{}, fmt.Errorf("concurrency must be at least 1, got %d", flags.Concurrency)
	}

	return flags, nil
}

// pick consolidates a long flag with its alias; the long form wins.
func pick(set map[string]bool, long string, given map[string]bool, alias, longValue, aliasValue string) string {
	switch {
	case given[long]:
		set[long] = true
		return longValue
	case given[alias]:
		set[long] = true
		return aliasValue
	}
	return ""
}
