package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// LegacyImagePrefix marks image settings that point at the shop's own file library
const LegacyImagePrefix = "shopify://shop_images"

var cdnBasePattern = regexp.MustCompile(`(https://cdn\.shopify\.com/s/files/\d+/\d+/\d+/\d+)`)

// IsEmptyTemplate reports whether a template file has no content at all
func IsEmptyTemplate(data []byte) bool {
	return len(bytes.TrimSpace(data)) == 0
}

// ParseTemplate decodes a template document into a generic JSON value
func ParseTemplate(data []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return doc, nil
}

// CollectLegacyImageRefs walks doc depth-first and returns every string leaf
// starting with LegacyImagePrefix. Object keys are visited in sorted order.
func CollectLegacyImageRefs(doc any) []string {
	var refs []string
	var walk func(v any)
	walk = func(v any) {
		switch node := v.(type) {
		case map[string]any:
			keys := make([]string, 0, len(node))
			for k := range node {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				walk(node[k])
			}
		case []any:
			for _, item := range node {
				walk(item)
			}
		case string:
			if strings.HasPrefix(node, LegacyImagePrefix) {
				refs = append(refs, node)
			}
		}
	}
	walk(doc)
	return refs
}

// FilesBaseURL extracts the shop's CDN root from a public asset URL and
// returns the base of its file library.
func FilesBaseURL(publicURL string) (string, error) {
	m := cdnBasePattern.FindStringSubmatch(publicURL)
	if m == nil {
		return "", fmt.Errorf("%w: %q does not match the CDN layout", ErrCDNBaseNotFound, publicURL)
	}
	return m[1] + "/files", nil
}

// ResolveImageURL rewrites a legacy reference into an absolute CDN URL
func ResolveImageURL(filesBase string, ref string) string {
	return filesBase + strings.TrimPrefix(ref, LegacyImagePrefix)
}

// Asset is a file attached to a theme
type Asset struct {
	Key         string `json:"key"`
	PublicURL   string `json:"public_url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// FilesBaseURLFromAssets uses the first asset exposing a public URL
func FilesBaseURLFromAssets(assets []Asset) (string, error) {
	for _, a := range assets {
		if a.PublicURL != "" {
			return FilesBaseURL(a.PublicURL)
		}
	}
	return "", ErrCDNBaseNotFound
}
