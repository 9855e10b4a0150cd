package render

import (
	"strconv"
	"strings"
	"time"

	"github.com/vitaforge/vitae/internal/resume"
)

// IterationMeta carries the positional metadata exposed inside {{#each}} as
// @index, @first and @last.
type IterationMeta struct {
	Index int
	First bool
	Last  bool
}

// Context is a scope chain for path resolution. Each {{#each}} iteration
// pushes a child scope holding the current element; lookups walk outward so
// inner scopes shadow outer ones, Handlebars-style.
type Context struct {
	value  any
	meta   *IterationMeta
	parent *Context
}

// NewContext wraps a root value, usually the map built by BuildContext.
func NewContext(root any) *Context {
	return &Context{value: root}
}

// Push creates a child scope for one iteration element.
func (c *Context) Push(value any, meta IterationMeta) *Context {
	return &Context{value: value, meta: &meta, parent: c}
}

// BuildContext produces the render context for one build: the raw config
// document augmented with currentYear and customColorStyles. The augmented
// map is ephemeral, constructed once per build and discarded.
func BuildContext(doc *resume.Document, now time.Time) *Context {
	root := make(map[string]any, len(doc.Raw)+2)
	for k, v := range doc.Raw {
		root[k] = v
	}
	root["currentYear"] = now.Year()
	root["customColorStyles"] = ColorStyleBlock(doc.Config.Settings.Colors)
	return NewContext(root)
}

// Resolve looks up a dot-separated path. Unresolvable paths yield nil, never
// an error; the renderer treats nil as empty output.
func (c *Context) Resolve(path string) any {
	switch path {
	case "this", ".":
		return c.value
	case "@index":
		if c.meta != nil {
			return c.meta.Index
		}
		return nil
	case "@first":
		if c.meta != nil {
			return c.meta.First
		}
		return nil
	case "@last":
		if c.meta != nil {
			return c.meta.Last
		}
		return nil
	}

	parts := strings.Split(path, ".")
	for scope := c; scope != nil; scope = scope.parent {
		if v, ok := resolveIn(scope.value, parts); ok {
			return v
		}
	}
	return nil
}

func resolveIn(value any, parts []string) (any, bool) {
	current := value
	for i, part := range parts {
		if part == "this" && i == 0 {
			continue
		}
		if part == "length" {
			if n, ok := lengthOf(current); ok {
				current = n
				continue
			}
			return nil, false
		}
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func lengthOf(value any) (int, bool) {
	switch v := value.(type) {
	case []any:
		return len(v), true
	case string:
		return len(v), true
	case map[string]any:
		return len(v), true
	default:
		return 0, false
	}
}

// IsTruthy implements JavaScript-style truthiness: false, null, absent
// values, empty strings and numeric zero are falsy. An empty sequence is
// truthy, so a section gated only by {{#if section}} still renders its shell
// when the section is an empty array; templates hide empty sections by
// length-gating ({{#if section.length}}).
func IsTruthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}

// IsFalsyForUnless is the falsy set used by {{#unless}}: the JS falsy set
// plus empty sequences. It is intentionally not the exact complement of
// IsTruthy for sequences, matching the documented helper semantics.
func IsFalsyForUnless(value any) bool {
	if seq, ok := value.([]any); ok {
		return len(seq) == 0
	}
	return !IsTruthy(value)
}

// asSequence coerces a resolved value into an iterable slice. Non-sequence
// values iterate zero times.
func asSequence(value any) []any {
	if seq, ok := value.([]any); ok {
		return seq
	}
	return nil
}

// Stringify renders a resolved value as template output. JSON numbers decode
// as float64; integral values print without a decimal point.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
