package decode

// Node is one expanded class instance in a decoded tree.
type Node struct {
	ClassName string
	Address   uint64
	Fields    []WalkedField
}

// WalkedField is a decoded field plus, for nested references that were
// expanded, the child node.
type WalkedField struct {
	FieldValue

	// Child is set when the field decoded to a nested reference and the
	// traversal expanded it. It stays nil at the depth cap, on a revisited
	// (address, class) pair, or when the target class is not registered.
	Child *Node
}

type visitKey struct {
	addr  uint64
	class string
}

// Walk decodes the class at base and eagerly expands nested references into
// a tree. Depth is capped (WithMaxDepth) and each (address, class) pair is
// expanded at most once, so traversal terminates even over self-referential
// or cyclic schema graphs.
func (d *Decoder) Walk(base uint64, class string) (*Node, error) {
	visited := make(map[visitKey]bool)
	return d.walk(base, class, d.maxDepth, visited)
}

func (d *Decoder) walk(base uint64, class string, depth int, visited map[visitKey]bool) (*Node, error) {
	fields, err := d.Class(base, class)
	if err != nil {
		return nil, err
	}
	visited[visitKey{addr: base, class: class}] = true

	node := &Node{ClassName: class, Address: base, Fields: make([]WalkedField, 0, len(fields))}
	for _, fv := range fields {
		wf := WalkedField{FieldValue: fv}

		if n, ok := fv.Value.(*NestedValue); ok && depth > 1 {
			key := visitKey{addr: n.Address(), class: n.ClassName()}
			if !visited[key] {
				// An unregistered target class is left unexpanded; the
				// nested reference itself still renders.
				if child, err := d.walk(n.Address(), n.ClassName(), depth-1, visited); err == nil {
					wf.Child = child
				}
			}
		}

		node.Fields = append(node.Fields, wf)
	}
	return node, nil
}
