package application

import (
	"errors"
	"testing"

	"shopify-template-sync/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelector_PromptsForMissingValues(t *testing.T) {
	prompter := &fakePrompter{input: "home", selected: []string{"A", "B"}}
	sel := NewSelector(testShops(), prompter, zerolog.Nop())

	session, err := sel.Select("", "", nil)
	require.NoError(t, err)

	assert.Equal(t, &domain.Session{Env: "A", Template: "templates/home.json", Shops: []string{"A", "B"}}, session)
	assert.Len(t, prompter.asked, 2)
}

func TestSelector_FlagsSkipPrompts(t *testing.T) {
	sel := NewSelector(testShops(), noPrompter{t}, zerolog.Nop())

	session, err := sel.Select("B", "templates/product.alt", []string{"A", "A", "B"})
	require.NoError(t, err)

	assert.Equal(t, "B", session.Env)
	assert.Equal(t, "templates/product.alt.json", session.Template)
	assert.Equal(t, []string{"A", "B"}, session.Shops)
}

func TestSelector_Errors(t *testing.T) {
	tests := []struct {
		name    string
		shops   *domain.Shops
		env     string
		tmpl    string
		targets []string
		want    error
	}{
		{name: "unknown env", shops: testShops(), env: "C", tmpl: "home", targets: []string{"A"}, want: domain.ErrUnknownShop},
		{name: "unknown target", shops: testShops(), tmpl: "home", targets: []string{"Z"}, want: domain.ErrUnknownShop},
		{name: "empty template", shops: testShops(), tmpl: ".json", targets: []string{"A"}, want: domain.ErrEmptyTemplateName},
		{name: "no shops", shops: domain.NewShops(), tmpl: "home", targets: []string{"A"}, want: domain.ErrUnknownShop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := NewSelector(tt.shops, noPrompter{t}, zerolog.Nop())
			_, err := sel.Select(tt.env, tt.tmpl, tt.targets)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSelector_PromptError(t *testing.T) {
	boom := errors.New("interrupt")
	sel := NewSelector(testShops(), &fakePrompter{err: boom}, zerolog.Nop())

	_, err := sel.Select("", "", nil)
	assert.ErrorIs(t, err, boom)
}
