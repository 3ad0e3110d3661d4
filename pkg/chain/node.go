package chain

// Base holds the leading fields shared by every record in a chain.
// Record types embed it as their first field.
type Base struct {
	Type Tag
	Next Node
}

// Header returns b itself, so that *Base and every struct embedding Base are Nodes.
func (b *Base) Header() *Base {
	return b
}

// Node is any record that can take part in a chain.
type Node interface {
	// Header returns the record's common tag and link fields
	Header() *Base
}

// Typed is a Node whose Go type knows its own tag
type Typed interface {
	Node
	// StructureType returns the tag every value of the type carries
	StructureType() Tag
}

// Init allocates a zero T, stamps its tag and links it in front of next.
func Init[T any, PT interface {
	*T
	Typed
}](next Node) PT {
	p := PT(new(T))
	h := p.Header()
	h.Type = p.StructureType()
	h.Next = next
	return p
}

// TagOf returns the tag of node, or TagNone for the terminator.
func TagOf(node Node) Tag {
	if IsNil(node) {
		return TagNone
	}
	return node.Header().Type
}

// NextOf returns the node following node, or nil for the terminator.
func NextOf(node Node) Node {
	if IsNil(node) {
		return nil
	}
	next := node.Header().Next
	if IsNil(next) {
		return nil
	}
	return next
}
