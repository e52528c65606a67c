package template

import (
	"regexp"
	"strings"
)

// templateRegex matches {{expression}} patterns with optional whitespace.
var templateRegex = regexp.MustCompile(`\{\{\s*([^}]+?)\s*\}\}`)

// Interpolate replaces every {{ path }} in s with the resolved value.
// Directives whose path does not resolve are left exactly as written,
// which is also how block markers such as {{#each items}} pass through.
func Interpolate(s string, ctx any) string {
	if !strings.Contains(s, "{{") {
		return s
	}
	return templateRegex.ReplaceAllStringFunc(s, func(match string) string {
		inner := templateRegex.FindStringSubmatch(match)
		if len(inner) < 2 {
			return match
		}
		val, ok := Resolve(ctx, strings.TrimSpace(inner[1]))
		if !ok {
			return match
		}
		return formatValue(val)
	})
}

// Expand parses content and evaluates it against ctx.
func Expand(content string, ctx any) string {
	return Evaluate(Parse(content), ctx)
}

// Evaluate renders parsed nodes against ctx.
//
// Inside a loop body only {{this}} and {{../name}} refer to the loop;
// every other directive, nested {{#if}} blocks included, is evaluated
// against ctx and therefore yields the same output on every iteration.
func Evaluate(nodes []Node, ctx any) string {
	var sb strings.Builder
	evaluate(&sb, nodes, ctx, nil)
	return sb.String()
}

// loopFrame is the element bound by the enclosing {{#each}}.
type loopFrame struct {
	item any
}

func evaluate(sb *strings.Builder, nodes []Node, ctx any, loop *loopFrame) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *TextNode:
			sb.WriteString(n.Text)

		case *VarNode:
			sb.WriteString(evaluateVar(n, ctx, loop))

		case *EachNode:
			val, ok := Resolve(ctx, n.Path)
			if !ok {
				continue
			}
			items, ok := asList(val)
			if !ok {
				continue
			}
			for _, item := range items {
				evaluate(sb, n.Body, ctx, &loopFrame{item: item})
			}

		case *IfNode:
			if truthy(Resolve(ctx, n.Path)) {
				evaluate(sb, n.Body, ctx, loop)
			}
		}
	}
}

func evaluateVar(n *VarNode, ctx any, loop *loopFrame) string {
	if loop != nil {
		switch {
		case n.Path == thisPath:
			// Only primitive elements are substituted; objects are not destructured.
			if isPrimitive(loop.item) {
				return formatValue(loop.item)
			}
			return n.Raw
		case strings.HasPrefix(n.Path, parentPrefix):
			val, ok := Resolve(ctx, strings.TrimPrefix(n.Path, parentPrefix))
			if !ok {
				return n.Raw
			}
			return formatValue(val)
		}
	}

	val, ok := Resolve(ctx, n.Path)
	if !ok {
		return n.Raw
	}
	return formatValue(val)
}

// Substitute returns a copy of a JSON-shaped tree with Interpolate
// applied to every string leaf. Arrays keep their order and length,
// objects keep every key, and other values are returned unchanged.
// Go-typed containers ([]map[string]any, map[string]string, ...) keep
// their type.
func Substitute(data any, ctx any) any {
	return walkTree(data, func(s string) string {
		return Interpolate(s, ctx)
	})
}
