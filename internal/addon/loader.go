package addon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Loader reads an add-on catalog from a named source.
type Loader interface {
	Load(ctx context.Context, path string) (*Catalog, error)
}

// fileLoader implements Loader for reading JSON add-on files.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based add-on loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "addon-loader").Logger(),
	}
}

// Load reads a JSON array of add-ons from the local file system.
func (l *fileLoader) Load(_ context.Context, filePath string) (*Catalog, error) {
	l.logger.Info().Str("file", filePath).Msg("loading addon file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open addon file")
		return nil, fmt.Errorf("failed to open addon file %s: %w", filePath, err)
	}
	defer file.Close()

	catalog, err := decodeCatalog(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to decode addon file")
		return nil, fmt.Errorf("failed to decode addon file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("addons_loaded", len(catalog.All())).
		Msg("addon file loaded successfully")

	return catalog, nil
}

func decodeCatalog(r io.Reader) (*Catalog, error) {
	var addons []Addon
	if err := json.NewDecoder(r).Decode(&addons); err != nil {
		return nil, err
	}

	for _, a := range addons {
		if a.Key == "" {
			return nil, fmt.Errorf("addon entry missing key")
		}
		if a.Price < 0 {
			return nil, fmt.Errorf("addon %q has negative price", a.Key)
		}
	}

	return NewCatalog(addons), nil
}
