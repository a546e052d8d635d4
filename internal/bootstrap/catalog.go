package bootstrap

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/osse101/ZetaFarm_Go/internal/catalog"
)

// LoadCatalog reads the game tables. With dir empty the tables embedded in
// the binary are used; otherwise the files in dir replace them and are
// checked against the same schemas.
func LoadCatalog(dir string) (*catalog.Catalog, error) {
	var (
		cat    *catalog.Catalog
		err    error
		source = "embedded"
	)
	if dir == "" {
		cat, err = catalog.Load()
	} else {
		source = dir
		cat, err = catalog.LoadFS(os.DirFS(dir))
	}
	if err != nil {
		return nil, fmt.Errorf("%s from %s: %w", ErrMsgFailedLoadCatalog, source, err)
	}

	slog.Info(LogMsgCatalogLoaded,
		"source", source,
		"crops", len(cat.Crops()),
		"pets", len(cat.Pets()),
		"phrases", len(cat.Phrases()))
	return cat, nil
}
