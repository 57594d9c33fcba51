package cluster

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/taigrr/lumen/pkg/math3d"
)

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	b := mustBuilder(t, Grid{X: 1, Y: 1, Z: 1}, WithCapacity(2))
	lights := []Light{pointLight(0, 0, -5, 1), pointLight(0, 0, -5, 1)}
	if _, err := b.Build(testCamera, math3d.Identity(), lights); err != nil {
		t.Fatalf("Build: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"clusters built", "cluster capacity reached", "dropped=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}

	SetLogger(nil)
	buf.Reset()
	if _, err := b.Build(testCamera, math3d.Identity(), lights); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("nil logger still wrote: %s", buf.String())
	}
}
