package domain

import (
	"fmt"
	"net/url"
)

// ShopConfig holds the connection settings of one storefront
type ShopConfig struct {
	Name     string `json:"name" yaml:"-"`
	Store    string `json:"store" yaml:"store"`
	ThemeID  int64  `json:"theme_id" yaml:"theme_id"`
	Password string `json:"-" yaml:"password"`
}

// Validate reports the first missing connection field.
// It is called right before a request is made, never while loading.
func (s ShopConfig) Validate() error {
	switch {
	case s.Store == "":
		return fmt.Errorf("%w: %s has no store", ErrIncompleteShop, s.Name)
	case s.ThemeID == 0:
		return fmt.Errorf("%w: %s has no theme_id", ErrIncompleteShop, s.Name)
	case s.Password == "":
		return fmt.Errorf("%w: %s has no password", ErrIncompleteShop, s.Name)
	}
	return nil
}

// AssetsURL returns the theme asset endpoint, filtered to key when key is not empty
func (s ShopConfig) AssetsURL(apiVersion string, key string) string {
	u := fmt.Sprintf("https://%s/admin/api/%s/themes/%d/assets.json", s.Store, apiVersion, s.ThemeID)
	if key != "" {
		u += "?asset[key]=" + url.QueryEscape(key)
	}
	return u
}

// GraphQLURL returns the Admin GraphQL endpoint of the shop
func (s ShopConfig) GraphQLURL(apiVersion string) string {
	return fmt.Sprintf("https://%s/admin/api/%s/graphql.json", s.Store, apiVersion)
}

// Shops is the set of configured shops in file declaration order
type Shops struct {
	order  []string
	byName map[string]ShopConfig
}

// NewShops builds the set; a repeated name keeps its first position and its last value
func NewShops(configs ...ShopConfig) *Shops {
	s := &Shops{byName: make(map[string]ShopConfig, len(configs))}
	for _, c := range configs {
		if _, seen := s.byName[c.Name]; !seen {
			s.order = append(s.order, c.Name)
		}
		s.byName[c.Name] = c
	}
	return s
}

// Names returns the shop names in declaration order
func (s *Shops) Names() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Len returns the number of shops
func (s *Shops) Len() int {
	return len(s.order)
}

// Default returns the first declared shop, the fallback source shop
func (s *Shops) Default() string {
	if len(s.order) == 0 {
		return ""
	}
	return s.order[0]
}

// Get returns the config of a shop
func (s *Shops) Get(name string) (ShopConfig, bool) {
	c, ok := s.byName[name]
	return c, ok
}

// Lookup is Get with an ErrUnknownShop error
func (s *Shops) Lookup(name string) (ShopConfig, error) {
	c, ok := s.byName[name]
	if !ok {
		return ShopConfig{}, fmt.Errorf("%w: %q", ErrUnknownShop, name)
	}
	return c, nil
}
