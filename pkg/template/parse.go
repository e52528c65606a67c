package template

import (
	"regexp"
	"strings"
)

// Node is one element of parsed section content.
// It is one of *TextNode, *VarNode, *EachNode or *IfNode.
type Node interface {
	node()
}

// TextNode is literal content copied to the output unchanged.
type TextNode struct {
	Text string
}

// VarNode is an interpolation directive: {{ path }}.
// Raw holds the directive exactly as written and is emitted when the
// path does not resolve.
type VarNode struct {
	Path string
	Raw  string
}

// EachNode is a loop block: {{#each path}}body{{/each}}.
type EachNode struct {
	Path string
	Body []Node
}

// IfNode is a conditional block: {{#if path}}body{{/if}}.
type IfNode struct {
	Path string
	Body []Node
}

func (*TextNode) node() {}
func (*VarNode) node()  {}
func (*EachNode) node() {}
func (*IfNode) node()   {}

const (
	thisPath     = "this"
	parentPrefix = "../"
)

var (
	eachCloseRegex = regexp.MustCompile(`\{\{\s*/each\s*\}\}`)
	ifCloseRegex   = regexp.MustCompile(`\{\{\s*/if\s*\}\}`)
)

// Parse splits content into a node list in a single left-to-right pass.
//
// Blocks do not nest within their own kind: the first closing tag ends
// the block. An opening tag with no closing tag after it is kept as
// literal text, as is any stray closing tag.
func Parse(content string) []Node {
	var (
		nodes     []Node
		textStart int
		pos       int
	)

	flush := func(end int) {
		if end > textStart {
			nodes = append(nodes, &TextNode{Text: content[textStart:end]})
		}
	}

	for pos < len(content) {
		open := strings.Index(content[pos:], "{{")
		if open < 0 {
			break
		}
		open += pos
		end := strings.Index(content[open+2:], "}}")
		if end < 0 {
			break
		}
		end += open + 2
		inner := strings.TrimSpace(content[open+2 : end])
		after := end + 2

		if keyword, path, ok := blockOpener(inner); ok {
			closer := eachCloseRegex
			if keyword == "if" {
				closer = ifCloseRegex
			}
			loc := closer.FindStringIndex(content[after:])
			if loc == nil {
				// Unbalanced: keep the opener as text and move on.
				pos = after
				continue
			}
			flush(open)
			body := Parse(content[after : after+loc[0]])
			if keyword == "each" {
				nodes = append(nodes, &EachNode{Path: path, Body: body})
			} else {
				nodes = append(nodes, &IfNode{Path: path, Body: body})
			}
			pos = after + loc[1]
			textStart = pos
			continue
		}

		flush(open)
		nodes = append(nodes, &VarNode{Path: inner, Raw: content[open:after]})
		pos = after
		textStart = pos
	}

	flush(len(content))
	return nodes
}

// blockOpener recognises "#each path" and "#if path".
func blockOpener(inner string) (keyword, path string, ok bool) {
	if !strings.HasPrefix(inner, "#") {
		return "", "", false
	}
	fields := strings.Fields(inner[1:])
	if len(fields) != 2 {
		return "", "", false
	}
	switch fields[0] {
	case "each", "if":
		return fields[0], fields[1], true
	}
	return "", "", false
}
