package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/chromabundle/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// stringList collects a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("chromabundle", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
chromabundle - A dependency-aware bundler for color-schema registries.

Usage:
  chromabundle [options] [CONFIG_PATH]

Arguments:
  CONFIG_PATH
    Path to an .hcl bundle config file declaring bundle and registry jobs.
    Optional when -schema or -registry flags describe the job directly.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to the bundle config file.")
	cFlag := flagSet.String("c", "", "Path to the bundle config file (shorthand).")
	storeFlag := flagSet.String("store", "schemas", "Path to the schema store root.")
	var schemaFlags stringList
	flagSet.Var(&schemaFlags, "schema", "Requested schema reference (kind/slug or bare slug). Repeatable.")
	outFlag := flagSet.String("out", "", "Output path for the ad-hoc selective bundle. Empty writes to stdout.")
	oFlag := flagSet.String("o", "", "Output path for the ad-hoc selective bundle (shorthand).")
	registryFlag := flagSet.String("registry", "", "Output path for an ad-hoc full-registry JSON artifact.")
	baseURLFlag := flagSet.String("base-url", "", "Registry root URL used to qualify identifiers.")
	versionFlag := flagSet.String("version", "", "Version stamped into registry artifacts.")
	printTreeFlag := flagSet.Bool("print-tree", false, "Render the dependency tree after resolving a bundle.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	configPath := ""
	if *configFlag != "" {
		configPath = *configFlag
	} else if *cFlag != "" {
		configPath = *cFlag
	} else if flagSet.NArg() > 0 {
		configPath = flagSet.Arg(0)
	}

	outPath := *outFlag
	if outPath == "" {
		outPath = *oFlag
	}

	if configPath == "" && len(schemaFlags) == 0 && *registryFlag == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		ConfigPath:     configPath,
		StorePath:      *storeFlag,
		Schemas:        schemaFlags,
		Output:         outPath,
		RegistryOutput: *registryFlag,
		BaseURL:        *baseURLFlag,
		Version:        *versionFlag,
		PrintTree:      *printTreeFlag,
		LogFormat:      logFormat,
		LogLevel:       logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
