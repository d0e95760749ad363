package ir

// Document is the ordered sequence of top-level nodes of a parse.
type Document struct {
	Nodes []*Node
}

// Root returns the single value a document stands for: nil when empty, the
// node itself when there is one, and otherwise a map whose entries are the
// top-level nodes. Unkeyed top-level nodes get an empty string key there.
func (d *Document) Root() *Node {
	switch len(d.Nodes) {
	case 0:
		return nil
	case 1:
		return d.Nodes[0]
	}
	entries := make([]*Node, len(d.Nodes))
	for i, n := range d.Nodes {
		if n.Key == nil {
			n.Key = FromString("")
		}
		entries[i] = n
	}
	return FromEntries(entries)
}
