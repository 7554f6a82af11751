// Command yabedump reads a file of YABE-encoded values and prints them,
// one per line with indentation for nested containers. It is an ordinary
// caller of the document package - no different from the way mebo's own
// examples/ programs sit on top of its blob codecs - and introduces no
// dependency in the other direction.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chmike/yabe"
	"github.com/chmike/yabe/document"
	"github.com/chmike/yabe/tag"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "yabedump <file>",
		Short: "Print the YABE-encoded values in a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dump(args[0])
		},
	}

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("yabedump: %v", err)
	}
}

func dump(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	r := yabe.NewReader(data)

	switch n := r.ReadSignature(); n {
	case 5:
		log.Print("signature present, version 0")
	case 4:
		log.Print("signature present, unrecognized version byte")
	}

	dec := document.NewDecoder()

	for !r.EndOfBuffer() {
		if r.Kind() == tag.KindNone {
			r.ReadNone()
			continue
		}

		v, err := dec.Decode(r)
		if err != nil {
			return fmt.Errorf("decode value at offset %d: %w", r.Cursor().Position(), err)
		}

		print(v, 0)
	}

	return nil
}

func print(v document.Value, depth int) {
	indent := strings.Repeat("  ", depth)

	switch x := v.(type) {
	case document.Array:
		fmt.Printf("%s[\n", indent)
		for _, item := range x {
			print(item, depth+1)
		}
		fmt.Printf("%s]\n", indent)

	case document.Object:
		fmt.Printf("%s{\n", indent)
		for _, entry := range x {
			fmt.Printf("%s  %s:\n", indent, entry.Key)
			print(entry.Value, depth+2)
		}
		fmt.Printf("%s}\n", indent)

	case document.Blob:
		fmt.Printf("%sblob(%s, %d bytes)\n", indent, x.MIME, len(x.Data))

	default:
		fmt.Printf("%s%v\n", indent, x)
	}
}
