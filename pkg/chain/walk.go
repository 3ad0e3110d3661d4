package chain

// Walk calls fn for every node reachable from head, in chain order, until fn
// returns false or the terminator is reached.
func Walk(head Node, fn func(Node) bool) {
	for n := head; !IsNil(n); n = NextOf(n) {
		if !fn(n) {
			return
		}
	}
}

// Tags returns the tags of the chain starting at head, in order.
func Tags(head Node) []Tag {
	tags := make([]Tag, 0)
	Walk(head, func(n Node) bool {
		tags = append(tags, n.Header().Type)
		return true
	})
	return tags
}

// Len counts the nodes reachable from head.
func Len(head Node) int {
	count := 0
	Walk(head, func(Node) bool {
		count++
		return true
	})
	return count
}

// Tail returns the last node of the chain, nil when the chain is empty.
func Tail(head Node) Node {
	var tail Node
	Walk(head, func(n Node) bool {
		tail = n
		return true
	})
	return tail
}

// Find returns the first node carrying tag.
func Find(head Node, tag Tag) (Node, bool) {
	var found Node
	Walk(head, func(n Node) bool {
		if n.Header().Type == tag {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}

// Contains reports whether node itself (not a copy) is linked into the chain.
func Contains(head Node, node Node) bool {
	if IsNil(node) {
		return false
	}
	target := node.Header()
	found := false
	Walk(head, func(n Node) bool {
		found = n.Header() == target
		return !found
	})
	return found
}

// HasCycle reports whether following Next from head never terminates.
func HasCycle(head Node) bool {
	slow, fast := head, head
	for !IsNil(fast) {
		fast = NextOf(fast)
		if IsNil(fast) {
			return false
		}
		fast = NextOf(fast)
		slow = NextOf(slow)
		if !IsNil(fast) && fast.Header() == slow.Header() {
			return true
		}
	}
	return false
}
