// Package document provides checked access to the JSON documents printed by
// `xcresulttool get --format json`.
//
// Every xcresulttool value is wrapped in a typed envelope: scalars look like
// {"_type": {"_name": "String"}, "_value": "..."} and arrays look like
// {"_type": {"_name": "Array"}, "_values": [...]}. Node keeps track of the path
// it was reached by, so a missing field is reported as, for example,
// `actions._values[0].actionResult: missing field "testsRef"`.
package document

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

const (
	valueKey  = "_value"
	valuesKey = "_values"
)

// ErrInvalidJSON ...
var ErrInvalidJSON = errors.New("invalid JSON document")

// PathError describes a required field that is absent or has an unexpected shape.
type PathError struct {
	Path   string
	Reason string
}

func (e *PathError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// Node is a read-only view of one position in a parsed document.
type Node struct {
	path  string
	value gjson.Result
}

// Parse validates data and returns the document root.
func Parse(data []byte) (Node, error) {
	if !gjson.ValidBytes(data) {
		return Node{}, ErrInvalidJSON
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Node{}, &PathError{Reason: "document root is not an object"}
	}
	return Node{value: root}, nil
}

// Path returns the location of the node inside its document.
func (n Node) Path() string {
	return n.path
}

// Has reports whether key is present on the node.
func (n Node) Has(key string) bool {
	return n.value.Get(escape(key)).Exists()
}

// Object returns the object stored under key.
func (n Node) Object(key string) (Node, error) {
	child := n.value.Get(escape(key))
	if !child.Exists() {
		return Node{}, n.missing(key)
	}
	if !child.IsObject() {
		return Node{}, &PathError{Path: n.join(key), Reason: "expected an object"}
	}
	return Node{path: n.join(key), value: child}, nil
}

// Values returns the elements of the array wrapper stored under key.
// An absent key or an absent "_values" list is reported as an empty list:
// xcresulttool omits empty arrays from its output.
func (n Node) Values(key string) ([]Node, error) {
	wrapper := n.value.Get(escape(key))
	if !wrapper.Exists() {
		return nil, nil
	}
	if !wrapper.IsObject() {
		return nil, &PathError{Path: n.join(key), Reason: "expected an array wrapper object"}
	}

	list := wrapper.Get(valuesKey)
	if !list.Exists() {
		return nil, nil
	}
	if !list.IsArray() {
		return nil, &PathError{Path: n.join(key) + "." + valuesKey, Reason: "expected an array"}
	}

	base := n.join(key) + "." + valuesKey
	items := list.Array()
	nodes := make([]Node, 0, len(items))
	for i, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", base, i)
		if !item.IsObject() {
			return nil, &PathError{Path: itemPath, Reason: "expected an object"}
		}
		nodes = append(nodes, Node{path: itemPath, value: item})
	}
	return nodes, nil
}

// FirstValue returns the first element of the array wrapper stored under key.
func (n Node) FirstValue(key string) (Node, error) {
	values, err := n.Values(key)
	if err != nil {
		return Node{}, err
	}
	if len(values) == 0 {
		return Node{}, &PathError{Path: n.join(key) + "." + valuesKey, Reason: "expected at least one element"}
	}
	return values[0], nil
}

// String returns the scalar stored at key._value.
func (n Node) String(key string) (string, error) {
	value, found, err := n.OptionalString(key)
	if err != nil {
		return "", err
	}
	if !found {
		return "", n.missing(key)
	}
	return value, nil
}

// OptionalString returns the scalar stored at key._value, and whether key is present at all.
func (n Node) OptionalString(key string) (string, bool, error) {
	wrapper := n.value.Get(escape(key))
	if !wrapper.Exists() {
		return "", false, nil
	}
	if !wrapper.IsObject() {
		return "", true, &PathError{Path: n.join(key), Reason: "expected a value wrapper object"}
	}

	scalar := wrapper.Get(valueKey)
	switch scalar.Type {
	case gjson.String, gjson.Number:
		return scalar.String(), true, nil
	case gjson.True, gjson.False:
		return strconv.FormatBool(scalar.Bool()), true, nil
	default:
		return "", true, &PathError{Path: n.join(key) + "." + valueKey, Reason: "expected a scalar value"}
	}
}

// Int returns the integer stored at key._value.
func (n Node) Int(key string) (int, error) {
	raw, err := n.String(key)
	if err != nil {
		return 0, err
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &PathError{Path: n.join(key) + "." + valueKey, Reason: fmt.Sprintf("invalid integer %q", raw)}
	}
	return value, nil
}

// Reference returns the object id stored at key.id._value.
func (n Node) Reference(key string) (string, error) {
	ref, err := n.Object(key)
	if err != nil {
		return "", err
	}

	id, err := ref.String("id")
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", &PathError{Path: ref.join("id") + "." + valueKey, Reason: "empty reference id"}
	}
	return id, nil
}

func (n Node) missing(key string) error {
	return &PathError{Path: n.path, Reason: fmt.Sprintf("missing field %q", key)}
}

func (n Node) join(key string) string {
	if n.path == "" {
		return key
	}
	return n.path + "." + key
}

// escape makes a field name safe to use as a single gjson path component.
func escape(key string) string {
	var escaped []byte
	for i := 0; i < len(key); i++ {
		switch key[i] {
		case '.', '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%', '"', ',', '(', ')', '[', ']', '{', '}':
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, key[i])
	}
	return string(escaped)
}
