// Command remorph inspects and verifies render-tree snapshot files
// produced by the treefmt package.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/remorph/remorph/treefmt"
)

const (
	exitSuccess     = 0
	exitUsage       = 1
	exitIOError     = 2
	exitBadSnapshot = 3
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "remorph",
		Short:         "Inspect and verify render-tree snapshots",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "inspect <snapshot>",
		Short: "Pretty-print the tree stored in a snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspect(args[0])
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "verify <snapshot>",
		Short: "Recompute and check a snapshot's digest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return verify(args[0])
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var formatErr *treefmt.FormatError
		var digestErr *treefmt.DigestError
		switch {
		case errors.As(err, &formatErr), errors.As(err, &digestErr):
			os.Exit(exitBadSnapshot)
		case os.IsNotExist(err):
			os.Exit(exitIOError)
		default:
			os.Exit(exitUsage)
		}
	}
	os.Exit(exitSuccess)
}

func inspect(path string) error {
	tree, digest, err := readSnapshot(path)
	if err != nil {
		return err
	}
	fmt.Printf("snapshot %s (digest %x)\n", path, digest[:8])
	printNode(tree.Root, 0)
	return nil
}

func verify(path string) error {
	_, digest, err := readSnapshot(path)
	if err != nil {
		return err
	}
	fmt.Printf("ok %x\n", digest)
	return nil
}

func readSnapshot(path string) (treefmt.Tree, [32]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return treefmt.Tree{}, [32]byte{}, err
	}
	defer func() { _ = f.Close() }()
	return treefmt.Read(f)
}

func printNode(n treefmt.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	label := n.Type
	if n.Key != "" {
		label += fmt.Sprintf(" key=%s", n.Key)
	}
	switch n.Type {
	case treefmt.KindValue:
		fmt.Printf("%s%s %q\n", indent, label, n.Value)
	case treefmt.KindElement:
		var attrs []string
		for _, a := range n.Attrs {
			attrs = append(attrs, fmt.Sprintf("%s=%q", a.Name, a.Value))
		}
		if len(attrs) > 0 {
			fmt.Printf("%s%s <%s %s>\n", indent, label, n.Tag, strings.Join(attrs, " "))
		} else {
			fmt.Printf("%s%s <%s>\n", indent, label, n.Tag)
		}
	default:
		fmt.Printf("%s%s\n", indent, label)
	}
	for _, child := range n.Children {
		printNode(child, depth+1)
	}
}
