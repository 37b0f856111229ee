// Package keytree reads the indentation-structured key/value text format
// used by specification and metadata files:
//
//	seriess:
//	    series:
//	        data_type:  u
//	        country:    Australia
//	        series_id:  AUSURAMS
//
// A line "key:" opens a section whose children are the following lines
// indented further; a line "key: value" is a leaf. Keys may repeat. Blank
// lines and lines starting with "//" are ignored. Values are NFC-normalized.
//
// Only the structure is handled here; what the keys mean is up to callers.
package keytree

import (
	"bufio"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Separator joins keys in a path such as "seriess::series".
const Separator = "::"

// Node is a section or a leaf.
type Node struct {
	Key      string
	Value    string
	Leaf     bool
	Line     int
	Children []*Node

	indent int
}

// ParseError reports a malformed line.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("keytree: line %d: %s", e.Line, e.Message)
}

// Parse reads text into a tree. The returned node is a synthetic root with
// an empty key whose children are the top-level entries.
func Parse(text string) (*Node, error) {
	root := &Node{indent: -1}
	stack := []*Node{root}

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		raw := strings.TrimRight(sc.Text(), " \r")
		trimmed := strings.TrimLeft(raw, " ")
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		if strings.HasPrefix(trimmed, "\t") {
			return nil, &ParseError{Line: lineNo, Message: "tab indentation is not allowed"}
		}
		indent := len(raw) - len(trimmed)

		key, value, ok := strings.Cut(trimmed, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" || strings.ContainsAny(key, " \t") {
			return nil, &ParseError{Line: lineNo, Message: fmt.Sprintf("expected 'key:' or 'key: value', got %q", trimmed)}
		}
		value = strings.TrimSpace(value)

		for len(stack) > 1 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]
		if parent.Leaf {
			return nil, &ParseError{Line: lineNo, Message: fmt.Sprintf("%q has a value and cannot have children", parent.Key)}
		}

		n := &Node{Key: key, Line: lineNo, indent: indent}
		if value != "" {
			n.Value = norm.NFC.String(value)
			n.Leaf = true
		}
		parent.Children = append(parent.Children, n)
		stack = append(stack, n)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("keytree: %w", err)
	}
	return root, nil
}

// At returns every node reached by following path from n, in document
// order. "seriess::series" returns each "series" section under each
// "seriess" section.
func (n *Node) At(path string) []*Node {
	current := []*Node{n}
	for _, key := range strings.Split(path, Separator) {
		var next []*Node
		for _, c := range current {
			for _, child := range c.Children {
				if child.Key == key {
					next = append(next, child)
				}
			}
		}
		current = next
	}
	return current
}

// Values returns the values of every leaf child named key, in order.
func (n *Node) Values(key string) []string {
	var out []string
	for _, c := range n.Children {
		if c.Key == key && c.Leaf {
			out = append(out, c.Value)
		}
	}
	return out
}

// Get returns the value of the single leaf child named key. It fails if the
// key is absent or repeated.
func (n *Node) Get(key string) (string, error) {
	vs := n.Values(key)
	switch len(vs) {
	case 0:
		return "", &ParseError{Line: n.Line, Message: fmt.Sprintf("%s: missing key %q", n.Key, key)}
	case 1:
		return vs[0], nil
	default:
		return "", &ParseError{Line: n.Line, Message: fmt.Sprintf("%s: key %q given %d times", n.Key, key, len(vs))}
	}
}

// Opt returns the value of the leaf child named key, or "" if absent.
func (n *Node) Opt(key string) (string, error) {
	vs := n.Values(key)
	if len(vs) > 1 {
		return "", &ParseError{Line: n.Line, Message: fmt.Sprintf("%s: key %q given %d times", n.Key, key, len(vs))}
	}
	if len(vs) == 0 {
		return "", nil
	}
	return vs[0], nil
}
