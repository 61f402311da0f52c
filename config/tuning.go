// Package config holds the tunable numbers the loadout pipeline reads:
// weight seeds, vote factors, rule thresholds and ordnance percentages.
// A Tuning is a request-scoped value; absent keys fall back to the
// defaults declared in keys.go and never fail the pipeline.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// Tuning is a flat key → value lookup. Nested YAML sections flatten to
// dotted keys, so "lrm: {increaseFactor: 3}" is stored as "lrm.increaseFactor".
type Tuning struct {
	values map[string]float64
}

// New returns a Tuning with no overrides; every lookup yields its default.
func New() *Tuning {
	return &Tuning{values: make(map[string]float64)}
}

// Load reads a YAML tuning file.
func Load(path string) (*Tuning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tuning file: %w", err)
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a YAML tuning document. Values that do not decode to a
// number are logged and skipped.
func Parse(r io.Reader) (*Tuning, error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return New(), nil
		}
		return nil, fmt.Errorf("decode tuning: %w", err)
	}
	return FromMap(raw), nil
}

// FromMap builds a Tuning from loosely typed values. Strings like "0.5" and
// booleans are accepted through mapstructure's weak decoding.
func FromMap(raw map[string]any) *Tuning {
	t := New()
	flatten("", raw, func(key string, v any) {
		var f float64
		if err := mapstructure.WeakDecode(v, &f); err != nil {
			slog.Warn("ignoring non-numeric tuning value", "key", key, "value", v, "error", err)
			return
		}
		t.values[key] = f
	})
	return t
}

func flatten(prefix string, m map[string]any, emit func(string, any)) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			flatten(key, sub, emit)
			continue
		}
		emit(key, v)
	}
}

// Set stores an override.
func (t *Tuning) Set(key string, v float64) {
	t.values[key] = v
}

// Float returns the first present key's value, or def when none is set.
func (t *Tuning) Float(def float64, keys ...string) float64 {
	if t != nil {
		for _, k := range keys {
			if v, ok := t.values[k]; ok {
				return v
			}
		}
	}
	slog.Debug("tuning value not set, using default", "keys", keys, "default", def)
	return def
}

// Get resolves k, trying each scope ("lrm" → "lrm.increaseFactor") before the
// bare name and finally the key's default.
func (t *Tuning) Get(k Key, scopes ...string) float64 {
	chain := make([]string, 0, len(scopes)+1)
	for _, s := range scopes {
		if s != "" {
			chain = append(chain, s+"."+k.Name)
		}
	}
	chain = append(chain, k.Name)
	return t.Float(k.Default, chain...)
}

// Int is Get truncated to an int.
func (t *Tuning) Int(k Key, scopes ...string) int {
	return int(t.Get(k, scopes...))
}

// Merge returns a copy of t with other's values layered on top.
func (t *Tuning) Merge(other *Tuning) *Tuning {
	out := &Tuning{values: maps.Clone(t.values)}
	if other != nil {
		maps.Copy(out.values, other.values)
	}
	return out
}

// Keys lists every override in sorted order.
func (t *Tuning) Keys() []string {
	keys := make([]string, 0, len(t.values))
	for k := range t.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (t *Tuning) String() string {
	var b strings.Builder
	for i, k := range t.Keys() {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%s=%g", k, t.values[k])
	}
	return b.String()
}
