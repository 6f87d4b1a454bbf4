package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestBlockDef_Validate(t *testing.T) {
	tests := map[string]struct {
		def    BlockDef
		expErr string
	}{
		"color only": {
			def: BlockDef{Name: "Stone", Color: "#888"},
		},
		"textures only": {
			def: BlockDef{Name: "Grass", Textures: map[string]string{"top": "grass_top", "side": "grass_side"}},
		},
		"missing name": {
			def:    BlockDef{Color: "#888"},
			expErr: "block name is required",
		},
		"bad color": {
			def:    BlockDef{Name: "Stone", Color: "grey"},
			expErr: `color "grey" must be #rgb or #rrggbb`,
		},
		"no appearance": {
			def:    BlockDef{Name: "Air"},
			expErr: "either color or textures is required",
		},
		"unknown face": {
			def:    BlockDef{Name: "Odd", Textures: map[string]string{"inside": "x"}},
			expErr: `unknown texture face "inside"`,
		},
		"empty texture": {
			def:    BlockDef{Name: "Odd", Textures: map[string]string{"all": ""}},
			expErr: `texture for face "all" is empty`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.def.Validate()
			if tt.expErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"stone.json": `{"version":1,"id":"stone","spec":{"name":"Stone","color":"#808080"}}`,
		"glass.yaml": "version: 1\nid: glass\nspec:\n  name: Glass\n  color: \"#ccf\"\n  transparent: true\n",
		"grass.yml":  "version: 1\nid: grass\nspec:\n  name: Grass\n  textures:\n    top: grass_top\n    side: grass_side\n    bottom: dirt\n",
	}
	for file, data := range files {
		if err := os.WriteFile(filepath.Join(dir, file), []byte(data), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", file, err)
		}
	}

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "len", c.Len(), 3)
	testutil.AssertEqual(t, "has stone", c.HasBlockType("stone"), true)
	testutil.AssertEqual(t, "has lava", c.HasBlockType("lava"), false)

	entries := c.Entries()
	testutil.AssertEqual(t, "first", entries[0].Type, "glass")
	testutil.AssertEqual(t, "second", entries[1].Type, "grass")
	testutil.AssertEqual(t, "third", entries[2].Type, "stone")
	testutil.AssertEqual(t, "glass transparent", entries[0].Transparent, true)
	testutil.AssertEqual(t, "grass top", entries[1].Textures["top"], "grass_top")
}

func TestLoad_InvalidDefinition(t *testing.T) {
	dir := t.TempDir()
	data := `{"version":1,"id":"air","spec":{"name":"Air"}}`
	if err := os.WriteFile(filepath.Join(dir, "air.json"), []byte(data), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := Load(dir)
	testutil.AssertErrorContains(t, err, "either color or textures is required")
}
