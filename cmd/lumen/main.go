// lumen - clustered light assignment inspector
// Assigns point lights to a view-frustum cluster grid the way a forward+
// renderer does each frame, and reports or visualizes the result.
//
// Commands:
//
//	build  - Build one frame, print statistics, optionally export the
//	         cluster texture and a PNG heatmap
//	view   - Live terminal heatmap of animated lights
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
)

func main() {
	if err := fang.Execute(context.Background(), newRootCmd()); err != nil {
		os.Exit(1)
	}
}
