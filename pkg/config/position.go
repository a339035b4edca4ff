package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
)

// Position is a 1-based location in the config file
type Position struct {
	Line int
	Col  int
}

// Error is a config validation error. Position is zero when the offending
// node could not be located.
type Error struct {
	Position Position
	Message  string
}

func (e *Error) Error() string {
	if e.Position.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("%d:%d: %s", e.Position.Line, e.Position.Col, e.Message)
}

// locateSchemaError maps a jsonschema validation error back to the YAML node it refers to
func locateSchemaError(content []byte, err error) Position {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return Position{}
	}

	// The first leaf cause carries the most specific instance location
	leaf := validationErr
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}

	var property string
	if additional, ok := leaf.ErrorKind.(*kind.AdditionalProperties); ok && len(additional.Properties) > 0 {
		property = additional.Properties[0]
	}

	pos, _ := locate(content, leaf.InstanceLocation, property)
	return pos
}

// locate walks the YAML AST along segments. When property is set, the
// position of that key inside the final mapping is returned instead.
func locate(content []byte, segments []string, property string) (Position, bool) {
	file, err := parser.ParseBytes(content, 0)
	if err != nil || len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return Position{}, false
	}

	node := file.Docs[0].Body
	for _, segment := range segments {
		next := child(node, segment)
		if next == nil {
			return tokenPosition(node.GetToken())
		}
		node = next
	}

	if property != "" {
		if key := findKey(node, property); key != nil {
			return tokenPosition(key.GetToken())
		}
	}
	return tokenPosition(node.GetToken())
}

// child returns the value under segment in a mapping or sequence node
func child(node ast.Node, segment string) ast.Node {
	switch n := node.(type) {
	case *ast.SequenceNode:
		idx, err := strconv.Atoi(segment)
		if err != nil || idx < 0 || idx >= len(n.Values) {
			return nil
		}
		return n.Values[idx]
	default:
		for _, value := range mappingValues(node) {
			if keyMatches(value.Key, segment) {
				return value.Value
			}
		}
	}
	return nil
}

func findKey(node ast.Node, property string) ast.Node {
	for _, value := range mappingValues(node) {
		if keyMatches(value.Key, property) {
			return value.Key
		}
	}
	return nil
}

// mappingValues handles documents with a single key, which parse to a bare MappingValueNode
func mappingValues(node ast.Node) []*ast.MappingValueNode {
	switch n := node.(type) {
	case *ast.MappingNode:
		return n.Values
	case *ast.MappingValueNode:
		return []*ast.MappingValueNode{n}
	}
	return nil
}

func keyMatches(key ast.MapKeyNode, segment string) bool {
	if key == nil {
		return false
	}
	tk := key.GetToken()
	return tk != nil && tk.Value == segment
}

func tokenPosition(tk *token.Token) (Position, bool) {
	if tk == nil || tk.Position == nil {
		return Position{}, false
	}
	return Position{Line: tk.Position.Line, Col: tk.Position.Column}, true
}
