package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/panforge/panlayout/pkg/errors"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	for _, id := range []string{"kurd-9", "low-pygmy", "hijaz", "integral", "amara", "celtic", "equinox", "mystic", "sabye", "la-sirena"} {
		if _, err := c.Get(id); err != nil {
			t.Errorf("built-in preset %s missing: %v", id, err)
		}
	}
	if c.List()[0].ID != "kurd-9" {
		t.Errorf("List should keep file order, first = %s", c.List()[0].ID)
	}
	if c.Len() != len(c.List()) || c.Len() != len(c.IDs()) {
		t.Error("Len, List and IDs disagree")
	}
}

func TestGetNotFound(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.Get("bagpipe")
	if !errors.Is(err, errors.ErrCodePresetNotFound) {
		t.Errorf("error = %v, want PRESET_NOT_FOUND", err)
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.toml")
	user := `
[[preset]]
id = "kurd-9"
name = "My Kurd"
layout = "C#/-G#-A-B-C#-D#-E-F#-G#"
mode = "aeolian"

[[preset]]
id = "aegean"
name = "C Aegean"
layout = "C/-E-G-B-C-E-F#-G-B"
mode = "lydian"
`
	if err := os.WriteFile(path, []byte(user), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def, _ := Default()
	if c.Len() != def.Len()+1 {
		t.Errorf("Len = %d, want %d", c.Len(), def.Len()+1)
	}
	kurd, _ := c.Get("kurd-9")
	if kurd.Name != "My Kurd" {
		t.Errorf("user preset should override built-in, got %q", kurd.Name)
	}
	if c.List()[0].ID != "kurd-9" {
		t.Error("override should keep the built-in position")
	}
	if last := c.List()[c.Len()-1]; last.ID != "aegean" {
		t.Errorf("new preset should be appended, last = %s", last.ID)
	}
}

func TestLoadMissingFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	def, _ := Default()
	if c.Len() != def.Len() {
		t.Errorf("Len = %d, want %d", c.Len(), def.Len())
	}
}

func TestParseTOMLErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{"syntax", `[[preset]` + "\n", errors.ErrCodeInvalidInput},
		{"bad id", "[[preset]]\nid = \"Bad Id\"\nname = \"x\"\nlayout = \"D/-A\"\nmode = \"aeolian\"\n", errors.ErrCodeInvalidInput},
		{"no name", "[[preset]]\nid = \"x\"\nlayout = \"D/-A\"\nmode = \"aeolian\"\n", errors.ErrCodeInvalidInput},
		{"bad mode", "[[preset]]\nid = \"x\"\nname = \"x\"\nlayout = \"D/-A\"\nmode = \"bebop\"\n", errors.ErrCodeInvalidMode},
		{"bad layout", "[[preset]]\nid = \"x\"\nname = \"x\"\nlayout = \"D/-H\"\nmode = \"aeolian\"\n", errors.ErrCodeInvalidLayout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTOML([]byte(tt.doc))
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestMergeTOMLAtomic(t *testing.T) {
	c := New()
	doc := "[[preset]]\nid = \"ok\"\nname = \"ok\"\nlayout = \"D/-A\"\nmode = \"aeolian\"\n" +
		"[[preset]]\nid = \"bad\"\nname = \"bad\"\nlayout = \"\"\nmode = \"aeolian\"\n"
	if err := c.MergeTOML([]byte(doc)); err == nil {
		t.Fatal("expected error")
	}
	if c.Len() != 0 {
		t.Errorf("invalid document merged %d presets", c.Len())
	}
}
