package shopify

import (
	"encoding/json"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

const fileCreateMutation = `mutation fileCreate($files: [FileCreateInput!]!) {
  fileCreate(files: $files) {
    files {
      createdAt
    }
    userErrors {
      field
      message
    }
  }
}`

// fileCreateOperation is checked once at startup so a broken document never reaches a shop
var fileCreateOperation = mustParseOperation(fileCreateMutation, ast.Mutation, "fileCreate", "files")

// parseOperation parses a single-operation document and checks its type, name and variables
func parseOperation(src string, op ast.Operation, name string, variables ...string) (*ast.OperationDefinition, error) {
	doc, gqlErr := parser.ParseQuery(&ast.Source{Name: name, Input: src})
	if gqlErr != nil {
		return nil, fmt.Errorf("invalid %s document: %v", name, gqlErr)
	}
	if len(doc.Operations) != 1 {
		return nil, fmt.Errorf("%s document must hold one operation, got %d", name, len(doc.Operations))
	}
	def := doc.Operations[0]
	if def.Operation != op {
		return nil, fmt.Errorf("%s document is a %s, want %s", name, def.Operation, op)
	}
	if def.Name != name {
		return nil, fmt.Errorf("operation is named %q, want %q", def.Name, name)
	}
	for _, v := range variables {
		if def.VariableDefinitions.ForName(v) == nil {
			return nil, fmt.Errorf("%s does not declare $%s", name, v)
		}
	}
	return def, nil
}

func mustParseOperation(src string, op ast.Operation, name string, variables ...string) *ast.OperationDefinition {
	def, err := parseOperation(src, op, name, variables...)
	if err != nil {
		panic(err)
	}
	return def
}

type graphQLRequest struct {
	OperationName string         `json:"operationName,omitempty"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
}

func fileCreateRequest(originalSource string) graphQLRequest {
	return graphQLRequest{
		OperationName: fileCreateOperation.Name,
		Query:         fileCreateMutation,
		Variables: map[string]any{
			"files": map[string]any{
				"alt":            "",
				"contentType":    "IMAGE",
				"originalSource": originalSource,
			},
		},
	}
}

type fileCreateResponse struct {
	Data *struct {
		FileCreate *struct {
			Files      []json.RawMessage `json:"files"`
			UserErrors []struct {
				Field   []string `json:"field"`
				Message string   `json:"message"`
			} `json:"userErrors"`
		} `json:"fileCreate"`
	} `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

// graphQLErrorMessages flattens the top-level errors member, which Shopify
// sends either as a list of error objects or as a bare string.
func graphQLErrorMessages(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var list []struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &list); err == nil {
		msgs := make([]string, 0, len(list))
		for _, e := range list {
			msgs = append(msgs, e.Message)
		}
		return msgs
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return []string{s}
	}
	return []string{string(raw)}
}
