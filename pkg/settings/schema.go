package settings

import (
	"github.com/invopop/jsonschema"
)

// Schema returns the JSON Schema of a document holding a settings tree
// under key.
func Schema(key string) *jsonschema.Schema {
	if key == "" {
		key = "Preferences"
	}

	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
		FieldNameTag:              "json",
	}

	tree := r.Reflect(&Tree{})
	tree.Version = ""

	schema := &jsonschema.Schema{
		Version:     jsonschema.Version,
		Type:        "object",
		Title:       "Preferences document",
		Description: "A JSON configuration document whose '" + key + "' property holds the preferences tree. Other properties are preserved on save.",
		Properties:  jsonschema.NewProperties(),
		Required:    []string{key},
	}
	schema.Properties.Set(key, tree)
	return schema
}
