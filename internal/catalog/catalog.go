package catalog

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-voxsync/internal/storage"
)

var colorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Face names accepted in BlockDef.Textures.
var faces = []string{"all", "top", "bottom", "side", "north", "south", "east", "west"}

// BlockDef describes one placeable block type. The key of the asset it is
// loaded from is the block type name clients put in Block.BlockType.
type BlockDef struct {
	Name        string            `json:"name" yaml:"name"`
	Color       string            `json:"color,omitempty" yaml:"color,omitempty"`
	Textures    map[string]string `json:"textures,omitempty" yaml:"textures,omitempty"` // face -> texture key
	Transparent bool              `json:"transparent,omitempty" yaml:"transparent,omitempty"`
}

// Validate satisfies storage.ValidatingSpec.
func (d *BlockDef) Validate() error {
	el := errors.NewErrorList()

	if d.Name == "" {
		el.Add(fmt.Errorf("block name is required"))
	}
	if d.Color != "" && !colorPattern.MatchString(d.Color) {
		el.Add(fmt.Errorf("color %q must be #rgb or #rrggbb", d.Color))
	}
	if d.Color == "" && len(d.Textures) == 0 {
		el.Add(fmt.Errorf("either color or textures is required"))
	}
	for face, tex := range d.Textures {
		if !slices.Contains(faces, face) {
			el.Add(fmt.Errorf("unknown texture face %q", face))
		}
		if tex == "" {
			el.Add(fmt.Errorf("texture for face %q is empty", face))
		}
	}

	return el.Err()
}

// Entry is a block definition paired with its type key.
type Entry struct {
	Type string `json:"type"`
	*BlockDef
}

// Catalog is the static set of block types known to the server.
type Catalog struct {
	defs storage.Storer[*BlockDef]
}

func New(defs storage.Storer[*BlockDef]) *Catalog {
	return &Catalog{defs: defs}
}

// Load reads block definitions from the asset directory at path.
func Load(path string) (*Catalog, error) {
	fs, err := storage.NewFileStore[*BlockDef](path)
	if err != nil {
		return nil, fmt.Errorf("loading block catalog: %w", err)
	}
	return New(fs), nil
}

// HasBlockType reports whether name is a known block type.
func (c *Catalog) HasBlockType(name string) bool {
	return c.defs.Get(name) != nil
}

// Entries returns every definition sorted by type key.
func (c *Catalog) Entries() []Entry {
	all := c.defs.GetAll()

	entries := make([]Entry, 0, len(all))
	for key, def := range all {
		entries = append(entries, Entry{Type: key, BlockDef: def})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Type, b.Type)
	})

	return entries
}

func (c *Catalog) Len() int {
	return len(c.defs.GetAll())
}
