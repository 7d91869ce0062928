package io_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/matzehuels/graphdraw/pkg/errors"
	gio "github.com/matzehuels/graphdraw/pkg/io"
)

func ExampleReadText() {
	input := `a
b
c
a b
b c 2
c b
`
	g, err := gio.ReadText(strings.NewReader(input), false)
	if err != nil {
		fmt.Println(err)
		return
	}
	info, _ := g.Edge("b", "c")
	fmt.Println("nodes:", g.NodeCount(), "edges:", g.EdgeCount(), "distinct:", g.DistinctEdgeCount())
	fmt.Println("b-c weight:", info.Weight)
	// Output:
	// nodes: 3 edges: 3 distinct: 2
	// b-c weight: 3
}

func ExampleReadText_error() {
	_, err := gio.ReadText(strings.NewReader("a\nb\na b c\n"), false)
	fmt.Println(errors.GetCode(err), errors.GetLine(err))
	fmt.Println(errors.UserMessage(err))
	// Output:
	// INVALID_WEIGHT 3
	// weight in line 3 is invalid.
}

func ExampleWriteText() {
	g, _ := gio.ReadText(strings.NewReader("x\ny\ny x 1.5\n"), false)
	_ = gio.WriteText(g, os.Stdout)
	// Output:
	// x
	// y
	// x y 1.5
}
