// Package render expands the resume HTML template against a render context.
//
// The template language is a deliberately small, closed set of constructs:
//
//	{{path}}                   escaped output
//	{{{path}}}                 raw output
//	{{helper path}}            helper call (see Registry)
//	{{#if path}}...{{else}}...{{/if}}
//	{{#unless path}}...{{/unless}}
//	{{#each path}}...{{/each}}
//
// Paths are dot-separated lookups into the context. Inside {{#each}} the
// current element is the context, addressable as "this", with positional
// metadata exposed as @index, @first and @last. No general scripting is
// reachable from a template.
package render

import (
	"fmt"
	"strings"
)

type nodeKind int

const (
	nodeText nodeKind = iota
	nodeOutput
	nodeBlock
)

type blockKind int

const (
	blockIf blockKind = iota
	blockUnless
	blockEach
)

func (b blockKind) String() string {
	switch b {
	case blockIf:
		return "if"
	case blockUnless:
		return "unless"
	case blockEach:
		return "each"
	default:
		return "unknown"
	}
}

// node is one parsed template element. Output nodes carry an optional helper
// name; block nodes carry a body and, for if-blocks, an else branch.
type node struct {
	kind     nodeKind
	text     string
	path     string
	helper   string
	raw      bool
	block    blockKind
	body     []node
	elseBody []node
}

// Template is a parsed, reusable template.
type Template struct {
	nodes   []node
	helpers Registry
}

// Parse parses source into a Template bound to the given helper registry.
// A nil registry gets the default helper set.
func Parse(source string, helpers Registry) (*Template, error) {
	if helpers == nil {
		helpers = DefaultHelpers()
	}
	p := &parser{src: source, helpers: helpers}
	nodes, err := p.parseNodes("")
	if err != nil {
		return nil, err
	}
	return &Template{nodes: nodes, helpers: helpers}, nil
}

type parser struct {
	src     string
	pos     int
	helpers Registry
}

// parseNodes consumes nodes until the closing tag for until ("" at top
// level). It leaves the parser positioned after the closing tag.
func (p *parser) parseNodes(until string) ([]node, error) {
	var nodes []node
	for p.pos < len(p.src) {
		open := strings.Index(p.src[p.pos:], "{{")
		if open < 0 {
			nodes = append(nodes, node{kind: nodeText, text: p.src[p.pos:]})
			p.pos = len(p.src)
			break
		}
		if open > 0 {
			nodes = append(nodes, node{kind: nodeText, text: p.src[p.pos : p.pos+open]})
		}
		p.pos += open

		raw := strings.HasPrefix(p.src[p.pos:], "{{{")
		closer := "}}"
		offset := 2
		if raw {
			closer = "}}}"
			offset = 3
		}
		end := strings.Index(p.src[p.pos+offset:], closer)
		if end < 0 {
			return nil, fmt.Errorf("unclosed tag at offset %d", p.pos)
		}
		tag := strings.TrimSpace(p.src[p.pos+offset : p.pos+offset+end])
		p.pos += offset + end + len(closer)

		switch {
		case strings.HasPrefix(tag, "#"):
			blk, err := p.parseBlock(tag)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, blk)

		case strings.HasPrefix(tag, "/"):
			name := strings.TrimPrefix(tag, "/")
			if name != until {
				return nil, fmt.Errorf("unexpected closing tag {{/%s}}", name)
			}
			return nodes, nil

		case tag == "else":
			if until == "" {
				return nil, fmt.Errorf("{{else}} outside of a block")
			}
			// Signal to the enclosing block parser via a sentinel node.
			nodes = append(nodes, node{kind: nodeText, text: elseSentinel})

		default:
			out, err := p.parseOutput(tag, raw)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, out)
		}
	}
	if until != "" {
		return nil, fmt.Errorf("missing closing tag {{/%s}}", until)
	}
	return nodes, nil
}

// elseSentinel marks the position of {{else}} within a block body. It is a
// zero-width marker that never survives into a finished Template.
const elseSentinel = "\x00else\x00"

func (p *parser) parseBlock(tag string) (node, error) {
	fields := strings.Fields(strings.TrimPrefix(tag, "#"))
	if len(fields) != 2 {
		return node{}, fmt.Errorf("malformed block tag {{%s}}", tag)
	}
	name, path := fields[0], fields[1]

	var kind blockKind
	switch name {
	case "if":
		kind = blockIf
	case "unless":
		kind = blockUnless
	case "each":
		kind = blockEach
	default:
		return node{}, fmt.Errorf("unknown block helper %q", name)
	}

	body, err := p.parseNodes(name)
	if err != nil {
		return node{}, err
	}

	blk := node{kind: nodeBlock, block: kind, path: path}
	blk.body, blk.elseBody = splitElse(body)
	if len(blk.elseBody) > 0 && kind == blockEach {
		return node{}, fmt.Errorf("{{else}} is not supported inside {{#each}}")
	}
	return blk, nil
}

func splitElse(body []node) (main, alt []node) {
	for i, n := range body {
		if n.kind == nodeText && n.text == elseSentinel {
			return body[:i], body[i+1:]
		}
	}
	return body, nil
}

func (p *parser) parseOutput(tag string, raw bool) (node, error) {
	fields := strings.Fields(tag)
	switch len(fields) {
	case 1:
		return node{kind: nodeOutput, path: fields[0], raw: raw}, nil
	case 2:
		if _, ok := p.helpers[fields[0]]; !ok {
			return node{}, fmt.Errorf("unknown helper %q", fields[0])
		}
		return node{kind: nodeOutput, helper: fields[0], path: fields[1], raw: raw}, nil
	default:
		return node{}, fmt.Errorf("malformed tag {{%s}}", tag)
	}
}

// Render expands the template against ctx. Rendering itself never fails:
// unresolvable paths produce empty output and helpers are total functions.
func (t *Template) Render(ctx *Context) string {
	var sb strings.Builder
	renderNodes(&sb, t.nodes, ctx, t.helpers)
	return sb.String()
}

func renderNodes(sb *strings.Builder, nodes []node, ctx *Context, helpers Registry) {
	for _, n := range nodes {
		switch n.kind {
		case nodeText:
			sb.WriteString(n.text)

		case nodeOutput:
			value := ctx.Resolve(n.path)
			var out string
			if n.helper != "" {
				out = helpers[n.helper](value)
			} else {
				out = Stringify(value)
			}
			if !n.raw {
				out = escapeHTML(out)
			}
			sb.WriteString(out)

		case nodeBlock:
			renderBlock(sb, n, ctx, helpers)
		}
	}
}

func renderBlock(sb *strings.Builder, n node, ctx *Context, helpers Registry) {
	value := ctx.Resolve(n.path)
	switch n.block {
	case blockIf:
		if IsTruthy(value) {
			renderNodes(sb, n.body, ctx, helpers)
		} else {
			renderNodes(sb, n.elseBody, ctx, helpers)
		}

	case blockUnless:
		// Unless uses the strict falsy set, which additionally treats an
		// empty sequence as falsy. See IsFalsyForUnless.
		if IsFalsyForUnless(value) {
			renderNodes(sb, n.body, ctx, helpers)
		} else {
			renderNodes(sb, n.elseBody, ctx, helpers)
		}

	case blockEach:
		items := asSequence(value)
		last := len(items) - 1
		for i, item := range items {
			child := ctx.Push(item, IterationMeta{Index: i, First: i == 0, Last: i == last})
			renderNodes(sb, n.body, child, helpers)
		}
	}
}

// escapeHTML escapes the five characters significant in HTML text and
// attribute contexts.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
