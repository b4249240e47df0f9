package resolver

import (
	"fmt"
	"io"
	"strings"
)

// RenderTree writes an indented view of the dependency tree, one root per
// requested schema. A schema reached through more than one path is printed
// in full only the first time; later encounters render a back-reference
// marker instead of re-expanding the subtree, which also keeps cyclic
// graphs printable.
func (r *Result) RenderTree(w io.Writer) error {
	printed := make(map[string]struct{})
	for _, root := range r.Roots {
		if err := r.renderNode(w, root.Key(), 0, printed); err != nil {
			return err
		}
	}
	return nil
}

// TreeString returns RenderTree output as a string, for logs and tests.
func (r *Result) TreeString() string {
	var sb strings.Builder
	// strings.Builder never returns a write error.
	_ = r.RenderTree(&sb)
	return sb.String()
}

func (r *Result) renderNode(w io.Writer, key string, depth int, printed map[string]struct{}) error {
	indent := strings.Repeat("  ", depth)
	node, ok := r.Tree[key]
	if !ok {
		_, err := fmt.Fprintf(w, "%s%s (missing)\n", indent, key)
		return err
	}

	if _, seen := printed[key]; seen {
		_, err := fmt.Fprintf(w, "%s%s (already visited)\n", indent, key)
		return err
	}
	printed[key] = struct{}{}

	if _, err := fmt.Fprintf(w, "%s%s\n", indent, key); err != nil {
		return err
	}
	for _, dep := range node.Dependencies {
		if err := r.renderNode(w, dep.Key(), depth+1, printed); err != nil {
			return err
		}
	}
	return nil
}
