package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/uiprobe/internal/app"
	"github.com/specialistvlad/uiprobe/modules/s3_report"
)

// Exit codes of the uiprobe process.
const (
	ExitPassed = 0
	ExitFailed = 1
	ExitUsage  = 2
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

// listFlag collects a flag given several times and/or as a comma separated list.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("uiprobe", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
uiprobe - A declarative end-to-end browser test runner.

Usage:
  uiprobe [options] [PATH...]

Arguments:
  PATH
    A .hcl file or a directory of .hcl files holding the run configuration,
    projects and scenarios. Defaults to the current directory.

Exit codes:
  0 all scenarios passed, 1 a scenario failed, 2 usage or configuration error.

Options:
`)
		flagSet.PrintDefaults()
	}

	var configPaths, projects listFlag
	flagSet.Var(&configPaths, "config", "Path to a configuration file or directory. May be repeated.")
	flagSet.Var(&configPaths, "c", "Path to a configuration file or directory (shorthand).")
	flagSet.Var(&projects, "project", "Only run the named project. May be repeated or comma separated.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 4, "Number of scenarios run concurrently.")
	driverFlag := flagSet.String("driver", app.DefaultDriver, "Browser driver. Options: 'playwright' or 'chromedp'.")
	reportFlag := flagSet.String("report", "", "Write the JSON report to this file.")
	headedFlag := flagSet.Bool("headed", false, "Show the browser window.")
	installFlag := flagSet.Bool("install-browsers", false, "Download the Playwright driver and browsers before running.")
	s3BucketFlag := flagSet.String("s3-bucket", "", "Upload the JSON report to this S3 bucket.")
	s3PrefixFlag := flagSet.String("s3-prefix", "", "Key prefix for the uploaded report.")
	s3EndpointFlag := flagSet.String("s3-endpoint", "", "Custom S3 endpoint, e.g. a MinIO server.")
	s3RegionFlag := flagSet.String("s3-region", "", "S3 region. Defaults to us-east-1.")
	socketIOFlag := flagSet.String("socketio-url", "", "Stream results to this socket.io endpoint.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	paths := append([]string(nil), configPaths...)
	paths = append(paths, flagSet.Args()...)
	if len(paths) == 0 {
		paths = []string{"."}
	}
	slog.Debug("Configuration paths determined.", "paths", paths)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Paths:           paths,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		HealthcheckPort: *healthPortFlag,
		Workers:         *workersFlag,
		Driver:          *driverFlag,
		Projects:        projects,
		Headed:          *headedFlag,
		InstallBrowsers: *installFlag,
		ReportPath:      *reportFlag,
		S3: s3_report.Config{
			Bucket:   *s3BucketFlag,
			Prefix:   *s3PrefixFlag,
			Endpoint: *s3EndpointFlag,
			Region:   *s3RegionFlag,
		},
		SocketIOURL: *socketIOFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
