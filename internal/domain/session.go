package domain

import (
	"strings"
)

// TemplateDir is the theme directory every synced template lives in
const TemplateDir = "templates"

// Session holds the choices made for one run
type Session struct {
	Env      string   // source shop
	Template string   // asset key, always templates/<name>.json
	Shops    []string // target shops, in processing order
}

// TemplatePath turns an operator supplied name into the asset key of the template.
// "home", "home.json" and "templates/home" all become "templates/home.json".
func TemplatePath(name string) (string, error) {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, TemplateDir+"/")
	if name == "" || name == ".json" {
		return "", ErrEmptyTemplateName
	}
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return TemplateDir + "/" + name, nil
}
