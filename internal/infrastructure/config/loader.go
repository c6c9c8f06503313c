// Package config loads the shop file and the run options of templatesync.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"shopify-template-sync/internal/domain"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is used when no --config flag is given
const DefaultConfigPath = "./config.yml"

// LoadShops reads the shop file at path.
//
// The file is a mapping of shop name to {store, theme_id, password}. Entries
// are kept in declaration order. Fields are not validated here; a shop
// missing one fails when it is first used.
func LoadShops(path string) (*domain.Shops, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return ParseShops(data)
}

// ParseShops decodes the content of a shop file
func ParseShops(data []byte) (*domain.Shops, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// empty file
	if root.Kind == 0 || len(root.Content) == 0 {
		return domain.NewShops(), nil
	}

	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing config file: line %d: expected a mapping of shop names", mapping.Line)
	}

	configs := make([]domain.ShopConfig, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := mapping.Content[i], mapping.Content[i+1]

		var shop domain.ShopConfig
		if err := value.Decode(&shop); err != nil {
			return nil, fmt.Errorf("parsing shop %q: %w", key.Value, err)
		}
		shop.Name = key.Value
		configs = append(configs, shop)
	}

	return domain.NewShops(configs...), nil
}
