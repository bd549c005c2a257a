package fonts

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddable(t *testing.T) {
	tests := []struct {
		name string
		font Font
		want bool
	}{
		{"truetype", Font{Name: "LabelFont", Path: "/fonts/TakaoPGothic.ttf"}, true},
		{"opentype", Font{Name: "LabelFont", Path: "/fonts/NotoSansJP-Regular.otf"}, true},
		{"uppercase extension", Font{Name: "LabelFont", Path: "/fonts/MSGOTHIC.TTF"}, true},
		{"collection", Font{Name: "LabelFont", Path: "/fonts/NotoSansCJK-Regular.ttc"}, false},
		{"degraded", Font{Name: FallbackName, Degraded: true}, false},
		{"no path", Font{Name: "LabelFont"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.font.Embeddable(); got != tt.want {
				t.Errorf("Embeddable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.ttf")
	if err := os.WriteFile(path, []byte("stub"), 0o644); err != nil {
		t.Fatal(err)
	}

	f := Resolve(path)
	if f.Path != path {
		t.Errorf("Resolve(override) path = %q, want %q", f.Path, path)
	}
	if f.Degraded {
		t.Error("Resolve(override) degraded = true, want false")
	}
	if f.Name != "LabelFont" {
		t.Errorf("Resolve(override) name = %q, want LabelFont", f.Name)
	}
}

func TestResolveMissingOverrideFallsThrough(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such.ttf")
	f := Resolve(missing)
	if f.Path == missing {
		t.Error("Resolve() returned the nonexistent override path")
	}
	// Whatever else resolution found, degraded mode means no path and the
	// Helvetica name.
	if f.Degraded && (f.Path != "" || f.Name != FallbackName) {
		t.Errorf("degraded font = %+v, want empty path and %s", f, FallbackName)
	}
}
