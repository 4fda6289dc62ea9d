// ABOUTME: Tagged-variant description of the JSON shape a generated page must have
// ABOUTME: Objects with ordered fields, lists with an element shape, and non-empty scalars
package schema

// Kind tags which variant a Shape is
type Kind int

const (
	KindScalar Kind = iota
	KindObject
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindList:
		return "list"
	default:
		return "scalar"
	}
}

// Field is one named member of an object shape
type Field struct {
	Name     string
	Shape    Shape
	Optional bool
}

// Shape describes an expected JSON value
type Shape struct {
	Kind    Kind
	Fields  []Field // KindObject, in render order
	Elem    *Shape  // KindList
	Example string  // KindScalar placeholder shown to the model
}

// Object builds an object shape from fields
func Object(fields ...Field) Shape {
	return Shape{Kind: KindObject, Fields: fields}
}

// List builds a list shape whose elements match elem
func List(elem Shape) Shape {
	return Shape{Kind: KindList, Elem: &elem}
}

// Scalar builds a non-empty scalar shape with a placeholder example
func Scalar(example string) Shape {
	return Shape{Kind: KindScalar, Example: example}
}

// Req declares a required field
func Req(name string, shape Shape) Field {
	return Field{Name: name, Shape: shape}
}

// Opt declares a field that may be absent or empty
func Opt(name string, shape Shape) Field {
	return Field{Name: name, Shape: shape, Optional: true}
}

// Str is shorthand for a required string field
func Str(name, example string) Field {
	return Req(name, Scalar(example))
}
