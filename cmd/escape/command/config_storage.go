package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-escape/internal/storage"
)

type StorageConfig struct {
	DatabasePath   string `json:"database_path"`
	CatalogPath    string `json:"catalog_path"`
	InventorySlots int    `json:"inventory_slots"`
	Verbose        bool   `json:"verbose"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()

	if c.DatabasePath == "" {
		el.Add(fmt.Errorf("storage: database_path is required"))
	}

	if c.CatalogPath != "" {
		if _, err := os.Stat(c.CatalogPath); err != nil {
			el.Add(fmt.Errorf("storage: invalid catalog_path %q: %w", c.CatalogPath, err))
		}
	}

	if c.InventorySlots < 0 {
		el.Add(fmt.Errorf("storage: inventory_slots must not be negative"))
	}

	return el.Err()
}

func (c *StorageConfig) BuildDatabase() (*storage.Database, error) {
	return storage.NewDatabase(c.DatabasePath, storage.WithVerbose(c.Verbose))
}

// BuildCatalog loads the item catalog. Without a catalog_path every item is
// its own stack and nothing is consumable.
func (c *StorageConfig) BuildCatalog() (*storage.Catalog, error) {
	if c.CatalogPath == "" {
		return storage.NewCatalog(nil), nil
	}
	return storage.LoadCatalog(c.CatalogPath)
}
