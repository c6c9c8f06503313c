package shopify

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"shopify-template-sync/internal/domain"
)

// rewriteTransport sends every request to the test server, whatever its host
type rewriteTransport struct {
	target *url.URL
}

func (t rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.URL.Scheme = t.target.Scheme
	r.URL.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(r)
}

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *http.Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	target, _ := url.Parse(srv.URL)
	return srv, &http.Client{Transport: rewriteTransport{target: target}}
}

func testShops() *domain.Shops {
	return domain.NewShops(
		domain.ShopConfig{Name: "alpha", Store: "alpha.myshopify.com", ThemeID: 11, Password: "shpat_alpha"},
		domain.ShopConfig{Name: "beta", Store: "beta.myshopify.com", ThemeID: 22, Password: "shpat_beta"},
	)
}
