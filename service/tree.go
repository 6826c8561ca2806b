package service

import (
	"fmt"
	"io"
	"strings"

	"i3split/pkg/i3"
)

// PrintTree writes an indented rendering of the container tree, one
// node per line. Intended for debugging layout decisions by hand.
func PrintTree(w io.Writer, root *i3.Node) {
	printNode(w, root, 0)
}

func printNode(w io.Writer, node *i3.Node, depth int) {
	fmt.Fprintf(w, "%s[id:%d type:%s name:%q layout:%s rect:%dx%d+%d+%d floating:%d]\n",
		strings.Repeat("  ", depth),
		node.ID, node.Type, node.Name, node.Layout,
		node.Rect.Width, node.Rect.Height, node.Rect.X, node.Rect.Y,
		len(node.FloatingNodes),
	)
	for i := range node.Nodes {
		printNode(w, &node.Nodes[i], depth+1)
	}
}
