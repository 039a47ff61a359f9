package styles

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/blockfill/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", NameSimple},
		{"simple", NameSimple},
		{"wireframe", NameWireframe},
	}
	for _, tt := range tests {
		s, err := Parse(tt.name)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.name, err)
		}
		if s.Name() != tt.want {
			t.Errorf("Parse(%q).Name() = %q, want %q", tt.name, s.Name(), tt.want)
		}
	}

	if _, err := Parse("handdrawn"); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("Parse(handdrawn) error = %v, want INVALID_STYLE", err)
	}
}

func TestRenderBlock(t *testing.T) {
	b := Block{ID: 7, X: 10, Y: 20, W: 30, H: 40, Fill: "#ba5e5e"}

	var buf bytes.Buffer
	Simple{}.RenderBlock(&buf, b)
	out := buf.String()
	for _, want := range []string{`id="block-7"`, `x="10.0"`, `width="30.0"`, `fill="#ba5e5e"`} {
		if !strings.Contains(out, want) {
			t.Errorf("simple block missing %s: %s", want, out)
		}
	}

	buf.Reset()
	Wireframe{}.RenderBlock(&buf, b)
	out = buf.String()
	if strings.Contains(out, "#ba5e5e") {
		t.Error("wireframe should not use the fill colour")
	}
	if !strings.Contains(out, ">7</text>") {
		t.Errorf("wireframe block missing label: %s", out)
	}

	buf.Reset()
	Wireframe{}.RenderBlock(&buf, Block{ID: 1, W: 10, H: 10})
	if strings.Contains(buf.String(), "<text") {
		t.Error("small wireframe block should not be labelled")
	}
}
