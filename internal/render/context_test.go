package render

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vitaforge/vitae/internal/resume"
)

func TestBuildContextInjectsDerivedBindings(t *testing.T) {
	cfg := &resume.Config{}
	cfg.Settings.Colors = &resume.Colors{Primary: "#ff6600"}
	doc := &resume.Document{
		Config: cfg,
		Raw: map[string]any{
			"personal": map[string]any{"name": "Ada"},
		},
	}
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	ctx := BuildContext(doc, now)

	assert.Equal(t, "2024", Stringify(ctx.Resolve("currentYear")))
	assert.Contains(t, fmt.Sprint(ctx.Resolve("customColorStyles")), "--color-primary: #ff6600;")

	// The document's own bindings survive alongside the injected ones.
	assert.Equal(t, "Ada", ctx.Resolve("personal.name"))
}

func TestBuildContextDoesNotMutateDocument(t *testing.T) {
	doc := &resume.Document{
		Config: &resume.Config{},
		Raw:    map[string]any{"personal": map[string]any{"name": "Ada"}},
	}
	_ = BuildContext(doc, time.Now())

	_, leaked := doc.Raw["currentYear"]
	assert.False(t, leaked, "derived bindings must live in a copy")
}

func TestBuildContextNoColorsNoStyles(t *testing.T) {
	doc := &resume.Document{Config: &resume.Config{}, Raw: map[string]any{}}
	ctx := BuildContext(doc, time.Now())

	assert.Equal(t, "", ctx.Resolve("customColorStyles"))
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "", Stringify(nil))
	assert.Equal(t, "Ada", Stringify("Ada"))
	assert.Equal(t, "true", Stringify(true))
	assert.Equal(t, "7", Stringify(7))
	// Integral JSON numbers print without a decimal point.
	assert.Equal(t, "42", Stringify(float64(42)))
	assert.Equal(t, "2.5", Stringify(2.5))
}

func TestIsTruthy(t *testing.T) {
	assert.False(t, IsTruthy(nil))
	assert.False(t, IsTruthy(false))
	assert.False(t, IsTruthy(""))
	assert.False(t, IsTruthy(float64(0)))
	assert.True(t, IsTruthy(true))
	assert.True(t, IsTruthy("x"))
	assert.True(t, IsTruthy(float64(1)))
	assert.True(t, IsTruthy([]any{}))
	assert.True(t, IsTruthy(map[string]any{}))
}

func TestIsFalsyForUnless(t *testing.T) {
	assert.True(t, IsFalsyForUnless(nil))
	assert.True(t, IsFalsyForUnless(false))
	assert.True(t, IsFalsyForUnless([]any{}))
	assert.False(t, IsFalsyForUnless([]any{"x"}))
	assert.False(t, IsFalsyForUnless(true))
}

func TestResolveScopeChain(t *testing.T) {
	root := NewContext(map[string]any{
		"outer": "root-value",
		"items": []any{"a"},
	})
	child := root.Push(map[string]any{"inner": "child-value"}, IterationMeta{Index: 0, First: true, Last: true})

	assert.Equal(t, "child-value", child.Resolve("inner"))
	assert.Equal(t, "root-value", child.Resolve("outer"))
	assert.Equal(t, 0, child.Resolve("@index"))
	assert.Equal(t, true, child.Resolve("@first"))
	assert.Nil(t, root.Resolve("@index"))
}

func TestResolveLength(t *testing.T) {
	ctx := NewContext(map[string]any{
		"items": []any{"a", "b"},
		"name":  "Ada",
	})

	assert.Equal(t, 2, ctx.Resolve("items.length"))
	assert.Equal(t, 3, ctx.Resolve("name.length"))
	assert.Nil(t, ctx.Resolve("missing.length"))
}
