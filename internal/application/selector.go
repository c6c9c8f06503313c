package application

import (
	"fmt"

	"shopify-template-sync/internal/domain"
	"shopify-template-sync/internal/ports"

	"github.com/rs/zerolog"
)

// Selector resolves the session of a run, prompting for what the flags left out
type Selector struct {
	shops    *domain.Shops
	prompter ports.Prompter
	logger   zerolog.Logger
}

// NewSelector creates a new selector
func NewSelector(shops *domain.Shops, prompter ports.Prompter, logger zerolog.Logger) *Selector {
	return &Selector{
		shops:    shops,
		prompter: prompter,
		logger:   logger,
	}
}

// Select builds the session. env defaults to the first configured shop;
// an empty template or target list is asked for interactively.
func (s *Selector) Select(env string, template string, targets []string) (*domain.Session, error) {
	if s.shops.Len() == 0 {
		return nil, fmt.Errorf("%w: no shops configured", domain.ErrUnknownShop)
	}

	if env == "" {
		env = s.shops.Default()
	}
	if _, err := s.shops.Lookup(env); err != nil {
		return nil, err
	}

	if template == "" {
		answer, err := s.prompter.Input("Template to sync:")
		if err != nil {
			return nil, fmt.Errorf("failed to read template name: %w", err)
		}
		template = answer
	}
	path, err := domain.TemplatePath(template)
	if err != nil {
		return nil, err
	}

	if len(targets) == 0 {
		answer, err := s.prompter.MultiSelect("Shops to sync:", s.shops.Names())
		if err != nil {
			return nil, fmt.Errorf("failed to read shop selection: %w", err)
		}
		targets = answer
	}

	selected := make([]string, 0, len(targets))
	seen := make(map[string]bool, len(targets))
	for _, name := range targets {
		if seen[name] {
			continue
		}
		if _, err := s.shops.Lookup(name); err != nil {
			return nil, err
		}
		seen[name] = true
		selected = append(selected, name)
	}

	session := &domain.Session{
		Env:      env,
		Template: path,
		Shops:    selected,
	}

	s.logger.Debug().
		Str("env", session.Env).
		Str("template", session.Template).
		Strs("shops", session.Shops).
		Msg("Session selected")

	return session, nil
}
