package depgraph_test

import (
	"context"
	"fmt"

	"github.com/LegacyCodeHQ/modgraph/depgraph"
)

// a.js is not on the b.js <-> c.js cycle, but the cycle is reachable from it,
// so its strict depth is undefined. Tolerant depth stops at the revisit.
func ExampleDepthFrom() {
	graph, err := depgraph.BuildDependencyGraph(context.Background(), depgraph.ImportMap{
		{Path: "a.js", Specifiers: []string{"b.js"}},
		{Path: "b.js", Specifiers: []string{"c.js"}},
		{Path: "c.js", Specifiers: []string{"b.js"}},
	}, literalResolver)
	if err != nil {
		panic(err)
	}

	_, err = depgraph.DepthFrom(graph, "a.js")
	fmt.Println(err)

	depth, _ := depgraph.DepthFrom(graph, "a.js", depgraph.CycleTolerant())
	fmt.Println(depth)
	// Output:
	// depth of a.js is undefined: dependency cycle b.js -> c.js -> b.js
	// 2
}
