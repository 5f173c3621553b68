package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"sol25/pkg/ast"
	"sol25/pkg/driver"
	"sol25/pkg/parser"
	"sol25/pkg/runtime"
	"sol25/pkg/xmlast"
)

const cliToolVersion = "sol25 0.0.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

// exitCodes is the launcher's external contract mapping each
// ErrorCategory to a stable, distinct process exit code. This is the
// only place in the module that performs this mapping.
var exitCodes = map[runtime.ErrorCategory]int{
	runtime.StructureError:    31,
	runtime.UndefinedClass:    32,
	runtime.DoesNotUnderstand: 53,
	runtime.TypeMismatch:      54,
	runtime.ValueError:        55,
	runtime.InternalError:     99,
}

const (
	exitSuccess      = 0
	exitMissingParam = 10
	exitInputError   = 11
	exitOutputError  = 12
)

func run(args []string) int {
	opts, sourcePath, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitMissingParam
	}
	if opts.help {
		printUsage()
		return exitSuccess
	}
	if opts.version {
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return exitSuccess
	}
	if sourcePath == "" {
		printUsage()
		return exitMissingParam
	}

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", sourcePath, err)
		return exitInputError
	}

	program, err := loadProgram(sourcePath, data, opts.textMode)
	if err != nil {
		return reportAndExit(err)
	}

	var cfg *driver.RunConfig
	if opts.configPath != "" {
		cfg, err = driver.LoadRunConfig(opts.configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read run configuration: %v\n", err)
			return exitInputError
		}
	} else {
		cfg = &driver.RunConfig{}
	}
	if opts.traceSet {
		cfg.Trace = opts.trace
	}
	if opts.maxSendsSet {
		cfg.MaxSends = opts.maxSends
	}

	stdin, closeStdin, err := openLineSource(cfg.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open stdin redirection: %v\n", err)
		return exitInputError
	}
	defer closeStdin()

	stdout, closeStdout, err := openSink(cfg.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open stdout redirection: %v\n", err)
		return exitOutputError
	}
	defer closeStdout()

	runOpts := driver.RunOptions{
		Stdin:    stdin,
		Stdout:   stdout,
		MaxSends: cfg.MaxSends,
	}
	if cfg.Trace {
		runOpts.Trace = func(receiverClass, selector string, argCount int) {
			fmt.Fprintf(os.Stderr, "trace: %s>>%s/%d\n", receiverClass, selector, argCount)
		}
	}

	if _, err := driver.Run(program, runOpts); err != nil {
		return reportAndExit(err)
	}
	return exitSuccess
}

func loadProgram(path string, data []byte, textMode bool) (*ast.Program, error) {
	if textMode {
		return parser.Parse(string(data))
	}
	return xmlast.Load(strings.NewReader(string(data)))
}

func reportAndExit(err error) int {
	category := runtime.CategoryOf(err)
	fmt.Fprintf(os.Stderr, "%s: %v\n", category, err)
	if code, ok := exitCodes[category]; ok {
		return code
	}
	return exitCodes[runtime.InternalError]
}

type cliOptions struct {
	help        bool
	version     bool
	textMode    bool
	traceSet    bool
	trace       bool
	maxSendsSet bool
	maxSends    int
	configPath  string
}

func parseArgs(args []string) (cliOptions, string, error) {
	var opts cliOptions
	var sourcePath string
	i := 0
	for i < len(args) {
		arg := args[i]
		switch arg {
		case "-h", "--help":
			opts.help = true
		case "--version", "-V":
			opts.version = true
		case "-text":
			opts.textMode = true
		case "-trace":
			opts.traceSet = true
			opts.trace = true
		case "-max-steps":
			i++
			if i >= len(args) {
				return opts, "", fmt.Errorf("-max-steps requires a value")
			}
			n, err := strconv.Atoi(args[i])
			if err != nil || n < 0 {
				return opts, "", fmt.Errorf("-max-steps requires a non-negative integer, got %q", args[i])
			}
			opts.maxSendsSet = true
			opts.maxSends = n
		case "-config":
			i++
			if i >= len(args) {
				return opts, "", fmt.Errorf("-config requires a path")
			}
			opts.configPath = args[i]
		default:
			if strings.HasPrefix(arg, "-") {
				return opts, "", fmt.Errorf("unrecognized flag %q", arg)
			}
			if sourcePath != "" {
				return opts, "", fmt.Errorf("unexpected extra argument %q", arg)
			}
			sourcePath = arg
		}
		i++
	}
	return opts, sourcePath, nil
}

func openLineSource(path string) (func() (string, bool), func(), error) {
	if path == "" {
		reader := bufio.NewReader(os.Stdin)
		return stdinLineSource(reader), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	reader := bufio.NewReader(f)
	return stdinLineSource(reader), func() { f.Close() }, nil
}

func stdinLineSource(reader *bufio.Reader) func() (string, bool) {
	return func() (string, bool) {
		line, err := reader.ReadString('\n')
		if line == "" && err != nil {
			return "", false
		}
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		return line, true
	}
}

func openSink(path string) (func(string), func(), error) {
	if path == "" {
		return func(s string) { fmt.Fprint(os.Stdout, s) }, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return func(s string) { fmt.Fprint(f, s) }, func() { f.Close() }, nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  sol25 [-text] [-trace] [-max-steps N] [-config file.yml] <source-file>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "By default <source-file> is read as the XML-serialized AST (see pkg/xmlast).")
	fmt.Fprintln(os.Stderr, "Pass -text to read SOL25 concrete syntax instead (see pkg/lexer, pkg/parser).")
}
