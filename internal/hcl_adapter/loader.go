package hcl_adapter

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/uiprobe/internal/config"
	"github.com/specialistvlad/uiprobe/internal/ctxlog"
	"github.com/specialistvlad/uiprobe/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	// Environ supplies the variables exposed as `env`. Defaults to os.Environ.
	Environ func() []string
}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{Environ: os.Environ}
}

// Load discovers every .hcl file under paths, decodes and merges them, and
// validates the result. All failures are *config.ConfigError.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.RunConfiguration, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(".hcl", paths...)
	if err != nil {
		return nil, &config.ConfigError{Msg: "failed to discover configuration files", Err: err}
	}
	if len(files) == 0 {
		return nil, config.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	environ := os.Environ
	if l.Environ != nil {
		environ = l.Environ
	}
	evalCtx := newEvalContext(environ())

	cfg := config.New()
	runSeenIn := ""
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, &config.ConfigError{Source: file, Msg: "failed to parse HCL file", Err: diags}
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, &config.ConfigError{Source: file, Msg: "failed to decode HCL file", Err: diags}
		}

		for _, run := range root.Runs {
			if runSeenIn != "" {
				return nil, &config.ConfigError{Source: file, Msg: "duplicate run block, first declared in " + runSeenIn}
			}
			runSeenIn = file
			if err := applyRun(cfg, run, file); err != nil {
				return nil, err
			}
		}
		for _, p := range root.Projects {
			project, err := translateProject(p, file)
			if err != nil {
				return nil, err
			}
			cfg.Projects = append(cfg.Projects, project)
		}
		names := make(map[string]struct{}, len(root.Scenarios))
		for _, s := range root.Scenarios {
			if _, dup := names[s.Name]; dup {
				return nil, &config.ConfigError{Source: file, Msg: fmt.Sprintf("scenario %q is declared more than once", s.Name)}
			}
			names[s.Name] = struct{}{}
			sc, err := translateScenario(s, file)
			if err != nil {
				return nil, err
			}
			cfg.Scenarios = append(cfg.Scenarios, sc)
		}
		logger.Debug("HCL file decoded.", "file", file, "projects", len(root.Projects), "scenarios", len(root.Scenarios))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("HCL loading complete.",
		"base_url", cfg.BaseURL,
		"timeout", cfg.ActionTimeout(),
		"projects", len(cfg.Projects),
		"scenarios", len(cfg.Scenarios),
	)
	return cfg, nil
}
