package hcl

import (
	"fmt"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/cleangrid/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Attribute names accepted inside a scenario block.
const (
	attrWidth           = "width"
	attrHeight          = "height"
	attrAgents          = "agents"
	attrDirtyPercentage = "dirty_percentage"
	attrMaxTime         = "max_time"
	attrSeed            = "seed"
)

var knownAttributes = map[string]bool{
	attrWidth:           true,
	attrHeight:          true,
	attrAgents:          true,
	attrDirtyPercentage: true,
	attrMaxTime:         true,
	attrSeed:            true,
}

// newEvalContext exposes the default scenario values as the `defaults` object.
func newEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"defaults": cty.ObjectVal(map[string]cty.Value{
				attrWidth:           cty.NumberIntVal(config.DefaultWidth),
				attrHeight:          cty.NumberIntVal(config.DefaultHeight),
				attrAgents:          cty.NumberIntVal(config.DefaultAgents),
				attrDirtyPercentage: cty.NumberFloatVal(config.DefaultDirtyPercentage),
				attrMaxTime:         cty.NumberIntVal(config.DefaultMaxTime),
			}),
		},
	}
}

// translateScenario evaluates a scenario block into the agnostic model.
func (l *Loader) translateScenario(block *scenarioBlock, file string, evalCtx *hcl.EvalContext) (*config.Scenario, error) {
	scenario := config.DefaultScenario(block.Name)
	scenario.Source = file

	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("scenario %q in %s: %w", block.Name, file, diags)
	}

	// Sorted so the first reported error does not depend on map order.
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		attr := attrs[name]
		if !knownAttributes[name] {
			return nil, fmt.Errorf("scenario %q in %s: unsupported attribute %q at %s", block.Name, file, name, attr.NameRange)
		}
		val, err := evalNumber(attr, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("scenario %q in %s: %w", block.Name, file, err)
		}

		switch name {
		case attrWidth:
			err = gocty.FromCtyValue(val, &scenario.Width)
		case attrHeight:
			err = gocty.FromCtyValue(val, &scenario.Height)
		case attrAgents:
			err = gocty.FromCtyValue(val, &scenario.Agents)
		case attrDirtyPercentage:
			err = gocty.FromCtyValue(val, &scenario.DirtyPercentage)
		case attrMaxTime:
			err = gocty.FromCtyValue(val, &scenario.MaxTime)
		case attrSeed:
			var seed int64
			err = gocty.FromCtyValue(val, &seed)
			scenario.Seed = &seed
		}
		if err != nil {
			return nil, fmt.Errorf("scenario %q in %s: attribute %q: %w", block.Name, file, name, err)
		}
	}

	return scenario, nil
}

// evalNumber evaluates an attribute and converts the result to a known,
// non-null cty.Number.
func evalNumber(attr *hcl.Attribute, evalCtx *hcl.EvalContext) (cty.Value, error) {
	val, diags := attr.Expr.Value(evalCtx)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("attribute %q: %w", attr.Name, diags)
	}
	if val.IsNull() {
		return cty.NilVal, fmt.Errorf("attribute %q must not be null", attr.Name)
	}
	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return cty.NilVal, fmt.Errorf("attribute %q: expected a number: %w", attr.Name, err)
	}
	return num, nil
}
