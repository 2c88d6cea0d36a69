package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/cleangrid/internal/config"
	"github.com/specialistvlad/cleangrid/internal/ctxlog"
	"github.com/specialistvlad/cleangrid/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL scenario loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot is the top-level structure of a scenario file.
type fileRoot struct {
	Scenarios []*scenarioBlock `hcl:"scenario,block"`
}

// scenarioBlock is a raw scenario block before evaluation.
type scenarioBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// Load parses every .hcl file under the given paths and returns the
// validated scenario model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := &config.Model{}
	parser := hclparse.NewParser()
	evalCtx := newEvalContext()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, block := range root.Scenarios {
			scenario, err := l.translateScenario(block, file, evalCtx)
			if err != nil {
				return nil, err
			}
			logger.Debug("Scenario loaded.", "name", scenario.Name, "file", file)
			model.Scenarios = append(model.Scenarios, scenario)
		}
	}

	if err := model.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("HCL loading complete.", "scenarios", len(model.Scenarios))
	return model, nil
}

// findAllHCLFiles returns a de-duplicated list of .hcl files under paths.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})

	for _, path := range paths {
		files, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to find scenario files in %s: %w", path, err)
		}
		for _, f := range files {
			if _, wasSeen := seen[f]; wasSeen {
				continue
			}
			seen[f] = struct{}{}
			allFiles = append(allFiles, f)
		}
	}
	return allFiles, nil
}
