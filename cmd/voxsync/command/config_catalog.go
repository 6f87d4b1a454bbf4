package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-voxsync/internal/catalog"
)

type CatalogConfig struct {
	Path string `json:"path"`
}

func (c *CatalogConfig) validate() error {
	el := errors.NewErrorList()

	if c.Path != "" {
		info, err := os.Stat(c.Path)
		if err != nil {
			el.Add(fmt.Errorf("catalog path: %w", err))
		} else if !info.IsDir() {
			el.Add(fmt.Errorf("catalog path %q is not a directory", c.Path))
		}
	}

	return el.Err()
}

// buildCatalog returns nil when no catalog is configured.
func (c *CatalogConfig) buildCatalog() (*catalog.Catalog, error) {
	if c.Path == "" {
		return nil, nil
	}
	return catalog.Load(c.Path)
}
