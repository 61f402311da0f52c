package imperative

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nstehr/quartermaster/munitions"
)

// Preset is one stored imperative set for a unit identity. Empty identity
// fields act as the wildcard.
type Preset struct {
	Chassis     string            `yaml:"chassis"`
	Model       string            `yaml:"model"`
	Pilot       string            `yaml:"pilot"`
	Imperatives map[string]string `yaml:"imperatives"`
}

// Keys is the tree path for the preset.
func (p Preset) Keys() []string {
	return []string{orAny(p.Chassis), orAny(p.Model), orAny(p.Pilot)}
}

type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

func orAny(s string) string {
	if strings.TrimSpace(s) == "" {
		return Wildcard
	}
	return s
}

// LoadPresets decodes a YAML preset document into t and returns how many
// presets were inserted.
func (t *Tree) LoadPresets(r io.Reader, cat *munitions.Catalog) (int, error) {
	var f presetFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, fmt.Errorf("decode presets: %w", err)
	}
	for _, p := range f.Presets {
		for binType, imp := range p.Imperatives {
			checkTokens(cat, p, binType, imp)
		}
		t.Insert(p.Keys(), p.Imperatives)
	}
	slog.Debug("presets loaded", "count", len(f.Presets), "nodes", t.Len())
	return len(f.Presets), nil
}

// ParsePresetLine reads the line format "chassis|model|pilot|binType|A:B:C".
func ParsePresetLine(line string) (Preset, error) {
	parts := strings.Split(line, "|")
	if len(parts) != 5 {
		return Preset{}, fmt.Errorf("preset line %q: want 5 fields, got %d", line, len(parts))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if parts[3] == "" {
		return Preset{}, fmt.Errorf("preset line %q: empty bin type", line)
	}
	return Preset{
		Chassis:     parts[0],
		Model:       parts[1],
		Pilot:       parts[2],
		Imperatives: map[string]string{parts[3]: parts[4]},
	}, nil
}

// LoadPresetLines reads line-format presets into t. Blank lines and lines
// starting with '#' are skipped; malformed lines are logged and skipped.
func (t *Tree) LoadPresetLines(r io.Reader, cat *munitions.Catalog) (int, error) {
	sc := bufio.NewScanner(r)
	n := 0
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p, err := ParsePresetLine(line)
		if err != nil {
			slog.Warn("skipping preset line", "line", lineNo, "error", err)
			continue
		}
		for binType, imp := range p.Imperatives {
			checkTokens(cat, p, binType, imp)
		}
		t.Insert(p.Keys(), p.Imperatives)
		n++
	}
	if err := sc.Err(); err != nil {
		return n, fmt.Errorf("read presets: %w", err)
	}
	return n, nil
}

// checkTokens warns about munition names no family knows. They are still
// inserted; the allocator skips what it cannot resolve.
func checkTokens(cat *munitions.Catalog, p Preset, binType, imp string) {
	if cat == nil {
		return
	}
	for _, tok := range Split(imp) {
		if cat.KnownMunition(tok) {
			continue
		}
		slog.Warn("unknown munition in preset",
			"chassis", p.Chassis,
			"model", p.Model,
			"binType", binType,
			"munition", tok,
			"suggestion", cat.SuggestMunition(tok),
		)
	}
}
