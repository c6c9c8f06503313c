package shopify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"shopify-template-sync/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *client {
	t.Helper()
	_, hc := newTestServer(t, handler)
	req := NewRequester(testShops(), zerolog.Nop(), WithHTTPClient(hc))
	return NewClient(req, "2022-10", zerolog.Nop()).(*client)
}

func alpha(t *testing.T) domain.ShopConfig {
	t.Helper()
	s, err := testShops().Lookup("alpha")
	require.NoError(t, err)
	return s
}

func TestClient_AssetExists(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/api/2022-10/themes/11/assets.json", r.URL.Path)
		switch r.URL.Query().Get("asset[key]") {
		case "templates/home.json":
			_, _ = w.Write([]byte(`{"asset":{"key":"templates/home.json","value":"{}"}}`))
		case "templates/empty.json":
			// empty body
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"errors":"Not Found"}`))
		}
	})

	exists, err := c.AssetExists(context.Background(), alpha(t), "templates/home.json")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = c.AssetExists(context.Background(), alpha(t), "templates/missing.json")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = c.AssetExists(context.Background(), alpha(t), "templates/empty.json")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestClient_AssetExists_IncompleteShop(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := c.AssetExists(context.Background(), domain.ShopConfig{Name: "alpha", Password: "x"}, "templates/home.json")
	assert.ErrorIs(t, err, domain.ErrIncompleteShop)
}

func TestClient_ListAssets(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"assets":[
			{"key":"layout/theme.liquid","content_type":"application/x-liquid","size":100},
			{"key":"assets/base.css","public_url":"https://cdn.shopify.com/s/files/1/2/3/4/t/11/assets/base.css?v=9","size":2048}
		]}`))
	})

	assets, err := c.ListAssets(context.Background(), alpha(t))
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, "assets/base.css", assets[1].Key)
	assert.Equal(t, int64(2048), assets[1].Size)
	assert.Equal(t, "https://cdn.shopify.com/s/files/1/2/3/4/t/11/assets/base.css?v=9", assets[1].PublicURL)
}

func TestClient_ListAssets_NotJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("maintenance"))
	})

	_, err := c.ListAssets(context.Background(), alpha(t))
	assert.Error(t, err)
}

func TestClient_CreateImageFile(t *testing.T) {
	var req graphQLRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/api/2022-10/graphql.json", r.URL.Path)
		data, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(data, &req))
		_, _ = w.Write([]byte(`{"data":{"fileCreate":{"files":[{"createdAt":"2022-11-01T00:00:00Z"}],"userErrors":[]}}}`))
	})

	res, err := c.CreateImageFile(context.Background(), alpha(t), "https://cdn.shopify.com/s/files/1/2/3/4/files/banner.png")
	require.NoError(t, err)

	assert.Equal(t, "fileCreate", req.OperationName)
	files := req.Variables["files"].(map[string]any)
	assert.Equal(t, "IMAGE", files["contentType"])
	assert.Equal(t, "", files["alt"])
	assert.Equal(t, "https://cdn.shopify.com/s/files/1/2/3/4/files/banner.png", files["originalSource"])

	assert.True(t, res.OK())
	assert.Equal(t, 1, res.Files)
}

func TestClient_CreateImageFile_Errors(t *testing.T) {
	bodies := map[string]string{
		"list":   `{"errors":[{"message":"Access denied for fileCreate field."}]}`,
		"string": `{"errors":"[API] Invalid API key or access token"}`,
		"user":   `{"data":{"fileCreate":{"files":[],"userErrors":[{"field":["files","0","originalSource"],"message":"Image URL is invalid"}]}}}`,
	}
	var current string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(bodies[current]))
	})

	current = "list"
	res, err := c.CreateImageFile(context.Background(), alpha(t), "https://x/files/a.png")
	require.NoError(t, err)
	assert.Equal(t, []string{"Access denied for fileCreate field."}, res.Errors)

	current = "string"
	res, err = c.CreateImageFile(context.Background(), alpha(t), "https://x/files/a.png")
	require.NoError(t, err)
	assert.Equal(t, []string{"[API] Invalid API key or access token"}, res.Errors)

	current = "user"
	res, err = c.CreateImageFile(context.Background(), alpha(t), "https://x/files/a.png")
	require.NoError(t, err)
	assert.Empty(t, res.Errors)
	assert.Equal(t, []string{"Image URL is invalid"}, res.UserErrors)
	assert.False(t, res.OK())
}
