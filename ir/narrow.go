package ir

// EmptyObject returns an object node with no fields.
func EmptyObject() *Node {
	return &Node{Type: ObjectType, Fields: []*Node{}, Values: []*Node{}}
}

// EmptyArray returns an array node with no values.
func EmptyArray() *Node {
	return &Node{Type: ArrayType, Values: []*Node{}}
}

// ToObject returns y if it is an object and a new empty object otherwise.
// A nil node is treated as null.
func (y *Node) ToObject() *Node {
	if y == nil || y.Type != ObjectType {
		return EmptyObject()
	}
	return y
}

// ToArray returns y if it is an array and a new empty array otherwise.
// A nil node is treated as null.
func (y *Node) ToArray() *Node {
	if y == nil || y.Type != ArrayType {
		return EmptyArray()
	}
	return y
}

// ToValue returns y, or a null node if y is nil.
func (y *Node) ToValue() *Node {
	if y == nil {
		return Null()
	}
	return y
}

// KindOf reports the type of y, treating nil as null.
func KindOf(y *Node) Type {
	if y == nil {
		return NullType
	}
	return y.Type
}
