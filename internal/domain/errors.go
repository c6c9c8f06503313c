package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigNotFound is returned when the shop config file does not exist
	ErrConfigNotFound = errors.New("config file not found")

	// ErrUnknownShop is returned when a shop name is not a key of the config file
	ErrUnknownShop = errors.New("unknown shop")

	// ErrIncompleteShop is returned at request time for shops missing store, theme_id or password
	ErrIncompleteShop = errors.New("incomplete shop config")

	// ErrTemplateNotFound covers every failure to fetch the template from the source shop
	ErrTemplateNotFound = errors.New("template not found")

	// ErrEmptyTemplateName is returned when no template name was given
	ErrEmptyTemplateName = errors.New("template name is empty")

	// ErrCDNBaseNotFound is returned when no asset of the source theme exposes a CDN URL
	ErrCDNBaseNotFound = errors.New("no CDN base URL found in theme assets")

	// ErrLiveTheme is returned when deploying to the published theme without allowLive
	ErrLiveTheme = errors.New("refusing to deploy to the live theme")
)

// TemplateReadError is returned when the local copy of a template cannot be read
type TemplateReadError struct {
	Path string
	Err  error
}

func (e *TemplateReadError) Error() string {
	return fmt.Sprintf("failed to read template %s: %v", e.Path, e.Err)
}

func (e *TemplateReadError) Unwrap() error {
	return e.Err
}
