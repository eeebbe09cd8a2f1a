// Package catalog discovers metric manifests on disk and turns them into
// descriptors.
//
// A catalog entry is a subdirectory of the metrics root named `m<digits>`
// that contains exactly one manifest file named `m<digits>_<name>.hcl`; the
// digits form the metric identifier. Discovery is read-only and idempotent:
// the same filesystem state always yields the same id→descriptor mapping.
// A malformed entry is logged and skipped, never fatal.
package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/uimetricsgo/internal/ctxlog"
	"github.com/vk/uimetricsgo/internal/metric"
)

// Descriptor is the immutable record of one discovered metric: its
// identifier, display name, manifest location, applicable GUI types, and
// declared parameter defaults.
type Descriptor struct {
	Id       string
	Name     string
	Source   string
	GuiTypes []metric.GuiType
	Defaults map[string]cty.Value
}

// AppliesTo reports whether the metric is applicable to the given GUI type.
func (d *Descriptor) AppliesTo(t metric.GuiType) bool {
	for _, gt := range d.GuiTypes {
		if gt == t {
			return true
		}
	}
	return false
}

var (
	dirPattern      = regexp.MustCompile(`^m[0-9]+$`)
	manifestPattern = regexp.MustCompile(`^m[0-9]+_[A-Za-z0-9_]+\.hcl$`)
)

// Scan walks the metrics root and returns the id→descriptor mapping for
// every well-formed entry. Only a failure to read the root itself is an
// error; individual malformed entries are logged at warn level and skipped.
func Scan(ctx context.Context, root string) (map[string]*Descriptor, error) {
	logger := ctxlog.FromContext(ctx)

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read metrics root %s: %w", root, err)
	}

	descriptors := make(map[string]*Descriptor)
	for _, entry := range entries {
		if !entry.IsDir() || !dirPattern.MatchString(entry.Name()) {
			continue
		}
		id := entry.Name()

		desc, err := scanEntry(filepath.Join(root, id), id)
		if err != nil {
			logger.Warn("Skipping malformed catalog entry.", "id", id, "error", err)
			continue
		}
		if _, dup := descriptors[id]; dup {
			logger.Warn("Skipping duplicate metric identifier.", "id", id)
			continue
		}
		descriptors[id] = desc
	}

	logger.Debug("Catalog scan complete.", "root", root, "metrics", len(descriptors))
	return descriptors, nil
}

// scanEntry locates and decodes the single manifest inside one catalog
// directory.
func scanEntry(dir, id string) (*Descriptor, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read entry directory: %w", err)
	}

	var manifests []string
	for _, f := range files {
		name := f.Name()
		if f.IsDir() || !manifestPattern.MatchString(name) {
			continue
		}
		if !strings.HasPrefix(name, id+"_") {
			continue
		}
		manifests = append(manifests, name)
	}

	switch len(manifests) {
	case 0:
		return nil, fmt.Errorf("no manifest file matching %s_<name>.hcl", id)
	case 1:
		// The one well-formed case.
	default:
		return nil, fmt.Errorf("ambiguous entry: found %d manifest files", len(manifests))
	}

	return decodeManifest(filepath.Join(dir, manifests[0]), id)
}

// decodeManifest parses one manifest file and translates its metric block.
func decodeManifest(path, id string) (*Descriptor, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, diags)
	}

	var root manifestRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", path, diags)
	}

	if len(root.Metrics) != 1 {
		return nil, fmt.Errorf("manifest %s must declare exactly one metric block, found %d", path, len(root.Metrics))
	}
	block := root.Metrics[0]
	if block.Id != id {
		return nil, fmt.Errorf("manifest %s declares metric %q, want %q", path, block.Id, id)
	}

	return block.translate(path)
}
