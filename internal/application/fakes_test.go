package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"shopify-template-sync/internal/domain"
)

func testShops() *domain.Shops {
	return domain.NewShops(
		domain.ShopConfig{Name: "A", Store: "a.myshopify.com", ThemeID: 1, Password: "shpat_a"},
		domain.ShopConfig{Name: "B", Store: "b.myshopify.com", ThemeID: 2, Password: "shpat_b"},
	)
}

// fakeClient records every call made against the Admin API
type fakeClient struct {
	mu sync.Mutex

	existing  map[string]bool // shop name -> template exists
	existErr  error
	assets    []domain.Asset
	uploadErr error
	results   map[string]domain.FileCreateResult // by source URL

	existCalls []string
	listCalls  []string
	uploads    map[string][]string // shop name -> sources
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		existing: map[string]bool{},
		results:  map[string]domain.FileCreateResult{},
		uploads:  map[string][]string{},
		assets: []domain.Asset{
			{Key: "assets/base.css", PublicURL: "https://cdn.shopify.com/s/files/1/2/3/4/t/1/assets/base.css?v=9"},
		},
	}
}

func (c *fakeClient) AssetExists(_ context.Context, shop domain.ShopConfig, _ string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.existCalls = append(c.existCalls, shop.Name)
	return c.existing[shop.Name], c.existErr
}

func (c *fakeClient) ListAssets(_ context.Context, shop domain.ShopConfig) ([]domain.Asset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listCalls = append(c.listCalls, shop.Name)
	return c.assets, nil
}

func (c *fakeClient) CreateImageFile(_ context.Context, shop domain.ShopConfig, src string) (*domain.FileCreateResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.uploads[shop.Name] = append(c.uploads[shop.Name], src)
	if c.uploadErr != nil {
		return nil, c.uploadErr
	}
	if res, ok := c.results[src]; ok {
		return &res, nil
	}
	return &domain.FileCreateResult{Source: src, Status: 200, Files: 1}, nil
}

func (c *fakeClient) networkCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.existCalls) + len(c.listCalls)
	for _, u := range c.uploads {
		n += len(u)
	}
	return n
}

// fakeTransfer writes content on Download and records deploys
type fakeTransfer struct {
	dir         string
	content     string
	downloadErr error
	deployErr   map[string]error

	downloads []string
	deploys   []string
	allowLive []bool
}

func newFakeTransfer(t *testing.T, content string) *fakeTransfer {
	return &fakeTransfer{dir: t.TempDir(), content: content, deployErr: map[string]error{}}
}

func (f *fakeTransfer) LocalPath(key string) string {
	return filepath.Join(f.dir, filepath.FromSlash(key))
}

func (f *fakeTransfer) Download(_ context.Context, shop domain.ShopConfig, key string) error {
	f.downloads = append(f.downloads, shop.Name)
	if f.downloadErr != nil {
		return f.downloadErr
	}
	path := f.LocalPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(f.content), 0o644)
}

func (f *fakeTransfer) Deploy(_ context.Context, shop domain.ShopConfig, _ string, allowLive bool) error {
	f.deploys = append(f.deploys, shop.Name)
	f.allowLive = append(f.allowLive, allowLive)
	return f.deployErr[shop.Name]
}

// fakePrompter answers from a script and records every question
type fakePrompter struct {
	input    string
	selected []string
	confirms map[string]bool // message -> answer
	err      error

	asked []string
}

func (p *fakePrompter) Input(message string) (string, error) {
	p.asked = append(p.asked, message)
	return p.input, p.err
}

func (p *fakePrompter) MultiSelect(message string, _ []string) ([]string, error) {
	p.asked = append(p.asked, message)
	return p.selected, p.err
}

func (p *fakePrompter) Confirm(message string, defaultValue bool) (bool, error) {
	p.asked = append(p.asked, message)
	if p.err != nil {
		return false, p.err
	}
	if answer, ok := p.confirms[message]; ok {
		return answer, nil
	}
	return defaultValue, nil
}

// noPrompter fails the test on any question
type noPrompter struct{ t *testing.T }

func (p noPrompter) Input(message string) (string, error) {
	p.t.Errorf("unexpected prompt %q", message)
	return "", fmt.Errorf("unexpected prompt")
}

func (p noPrompter) MultiSelect(message string, _ []string) ([]string, error) {
	p.t.Errorf("unexpected prompt %q", message)
	return nil, fmt.Errorf("unexpected prompt")
}

func (p noPrompter) Confirm(message string, _ bool) (bool, error) {
	p.t.Errorf("unexpected prompt %q", message)
	return false, fmt.Errorf("unexpected prompt")
}

type fakeReporter struct {
	lines []string
}

func (r *fakeReporter) Success(format string, args ...any) { r.add("ok", format, args...) }
func (r *fakeReporter) Failure(format string, args ...any) { r.add("fail", format, args...) }
func (r *fakeReporter) Detail(format string, args ...any)  { r.add("detail", format, args...) }
func (r *fakeReporter) Info(format string, args ...any)    { r.add("info", format, args...) }

func (r *fakeReporter) add(kind string, format string, args ...any) {
	r.lines = append(r.lines, kind+": "+fmt.Sprintf(format, args...))
}

type fakePublisher struct {
	events []domain.SyncEventType
}

func (p *fakePublisher) Publish(_ context.Context, event *domain.SyncEvent) error {
	p.events = append(p.events, event.Type)
	return nil
}

type fakeHistory struct {
	saved []*domain.SyncRun
}

func (h *fakeHistory) Save(_ context.Context, run *domain.SyncRun) error {
	run.ID = fmt.Sprintf("run-%d", len(h.saved)+1)
	h.saved = append(h.saved, run)
	return nil
}

func (h *fakeHistory) ListRecent(_ context.Context, _ int64) ([]*domain.SyncRun, error) {
	return h.saved, nil
}
