package catalog

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/typeexpr"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/uimetricsgo/internal/metric"
)

// manifestRoot is the top-level structure of a metric manifest file.
type manifestRoot struct {
	Metrics []*metricBlock `hcl:"metric,block"`
	Remain  hcl.Body       `hcl:",remain"`
}

// metricBlock represents a `metric` block from a manifest.
type metricBlock struct {
	Id       string        `hcl:"id,label"`
	Name     string        `hcl:"name"`
	GuiTypes []string      `hcl:"gui_types,optional"`
	Inputs   []*inputBlock `hcl:"input,block"`
}

// inputBlock defines a single declared parameter with its type and default.
type inputBlock struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
	Default     *cty.Value     `hcl:"default,optional"`
}

// translate converts a decoded metric block into an immutable Descriptor.
func (b *metricBlock) translate(source string) (*Descriptor, error) {
	desc := &Descriptor{
		Id:       b.Id,
		Name:     b.Name,
		Source:   source,
		Defaults: make(map[string]cty.Value),
	}

	if len(b.GuiTypes) == 0 {
		// A manifest that declares no gui_types applies to every GUI type.
		desc.GuiTypes = []metric.GuiType{metric.GuiTypeDesktop, metric.GuiTypeMobile}
	} else {
		for _, raw := range b.GuiTypes {
			t, err := metric.ParseGuiType(raw)
			if err != nil {
				return nil, fmt.Errorf("metric %q: %w", b.Id, err)
			}
			desc.GuiTypes = append(desc.GuiTypes, t)
		}
	}

	for _, in := range b.Inputs {
		constraint, diags := typeexpr.TypeConstraint(in.Type)
		if diags.HasErrors() {
			return nil, fmt.Errorf("metric %q, input %q: invalid type expression: %w", b.Id, in.Name, diags)
		}
		if in.Default == nil || in.Default.IsNull() {
			continue
		}
		val, err := convert.Convert(*in.Default, constraint)
		if err != nil {
			return nil, fmt.Errorf("metric %q, input %q: default does not match declared type: %w", b.Id, in.Name, err)
		}
		desc.Defaults[in.Name] = val
	}

	return desc, nil
}
