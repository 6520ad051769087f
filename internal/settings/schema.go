package settings

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "vkbasalt-settings.schema.json"

type compiledSchema = jsonschema.Schema

// Schema returns a JSON Schema (draft 2020-12) describing a parsed config.
// Unknown keys are allowed. String options without a fixed set of values
// carry no type constraint, because the parser types a value like
// "toggleKey = 1" as an integer.
func (c *Catalog) Schema() ([]byte, error) {
	props := make(map[string]any)
	for _, o := range c.Options() {
		props[o.Key] = optionSchema(o)
	}
	doc := map[string]any{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"title":                "vkBasalt configuration",
		"type":                 "object",
		"properties":           props,
		"additionalProperties": true,
	}
	return json.MarshalIndent(doc, "", "  ")
}

func optionSchema(o Option) map[string]any {
	s := map[string]any{}
	if o.Description != "" {
		s["description"] = o.Description
	}
	switch o.Type {
	case TypeInteger:
		s["type"] = "integer"
	case TypeFloat:
		s["type"] = "number"
	case TypeBoolean:
		s["type"] = "boolean"
	case TypeString:
		// Colon separated lists are checked element-wise by Validate.
		if len(o.ValidValues) > 0 && !o.List {
			s["type"] = "string"
			s["enum"] = o.ValidValues
		}
	}
	if len(o.Range) == 2 {
		s["minimum"] = o.Range[0]
		s["maximum"] = o.Range[1]
	}
	return s
}

// compiled builds the catalog's schema once.
func (c *Catalog) compiled() (*jsonschema.Schema, error) {
	c.schemaOnce.Do(func() {
		raw, err := c.Schema()
		if err != nil {
			c.schemaErr = fmt.Errorf("generating schema: %w", err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			c.schemaErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, doc); err != nil {
			c.schemaErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		c.schema, c.schemaErr = compiler.Compile(schemaURL)
		if c.schemaErr != nil {
			c.schemaErr = fmt.Errorf("compiling schema: %w", c.schemaErr)
		}
	})
	return c.schema, c.schemaErr
}
