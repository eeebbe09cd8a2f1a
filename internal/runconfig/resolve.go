package runconfig

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/uimetricsgo/internal/metric"
	"github.com/vk/uimetricsgo/internal/registry"
)

// Resolve turns a raw document plus a registry snapshot into an ordered run
// plan. It is a pure function: no I/O, and the registry is only read.
//
// Disabled entries are dropped. Unknown identifiers are retained with the
// missing marker. For known identifiers, descriptor defaults are merged with
// run-supplied overrides, the override taking precedence key by key.
func Resolve(raw *Raw, reg *registry.Registry) (*RunConfig, error) {
	cfg := &RunConfig{Entries: make([]Entry, 0, len(raw.Metrics))}

	for _, re := range raw.Metrics {
		if !re.Enabled {
			continue
		}

		entry, ok := reg.Lookup(re.Id)
		if !ok {
			cfg.Entries = append(cfg.Entries, Entry{Id: re.Id, Missing: true})
			continue
		}

		params := make(metric.Params, len(entry.Descriptor.Defaults)+len(re.Parameters))
		for name, val := range entry.Descriptor.Defaults {
			params[name] = val
		}
		for name, override := range re.Parameters {
			val, err := ctyFromGo(override)
			if err != nil {
				return nil, fmt.Errorf("metric %s, parameter %s: %w", re.Id, name, err)
			}
			params[name] = val
		}

		cfg.Entries = append(cfg.Entries, Entry{Id: re.Id, Params: params})
	}

	return cfg, nil
}

// ctyFromGo converts a decoded YAML value into its cty equivalent. YAML
// produces a small closed set of Go types, so the mapping is explicit.
func ctyFromGo(v any) (cty.Value, error) {
	switch val := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case bool:
		return cty.BoolVal(val), nil
	case int:
		return cty.NumberIntVal(int64(val)), nil
	case int64:
		return cty.NumberIntVal(val), nil
	case float64:
		return cty.NumberFloatVal(val), nil
	case string:
		return cty.StringVal(val), nil
	case []any:
		if len(val) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(val))
		for i, elem := range val {
			converted, err := ctyFromGo(elem)
			if err != nil {
				return cty.NilVal, err
			}
			elems[i] = converted
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(val) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(val))
		for k, elem := range val {
			converted, err := ctyFromGo(elem)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[k] = converted
		}
		return cty.ObjectVal(attrs), nil
	default:
		return cty.NilVal, fmt.Errorf("unsupported parameter value of type %T", v)
	}
}
