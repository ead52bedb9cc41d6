package mcpserver

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// SchemaFor generates a JSON Schema object from a struct type T.
//
// Field names come from json tags. Supported auxiliary tags:
//
//	desc:"..."      property description
//	required:"true" marks the property as required
//	enum:"a,b,c"    allowed values for string properties
//	default:"x"     default value, converted to the property type
func SchemaFor[T any]() (json.RawMessage, error) {
	var zero T
	t := reflect.TypeOf(zero)

	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("mcpserver: schema source must be a struct, got %v", t)
	}

	schema, err := buildStructSchema(t)
	if err != nil {
		return nil, err
	}
	return json.Marshal(schema)
}

// MustSchemaFor is like SchemaFor but panics on error.
func MustSchemaFor[T any]() json.RawMessage {
	schema, err := SchemaFor[T]()
	if err != nil {
		panic(err)
	}
	return schema
}

// propertyDef holds the definition of a single property.
type propertyDef struct {
	Type        string         `json:"type"`
	Description string         `json:"description,omitempty"`
	Enum        []any          `json:"enum,omitempty"`
	Default     any            `json:"default,omitempty"`
	Items       *propertyDef   `json:"items,omitempty"`
	Properties  map[string]any `json:"properties,omitempty"`
	Required    []string       `json:"required,omitempty"`
}

func buildStructSchema(t reflect.Type) (map[string]any, error) {
	properties := make(map[string]any)
	var required []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		name := strings.Split(jsonTag, ",")[0]
		if name == "" {
			name = field.Name
		}

		prop := typeToPropertyDef(field.Type)
		prop.Description = field.Tag.Get("desc")

		if enum := field.Tag.Get("enum"); enum != "" {
			for _, v := range strings.Split(enum, ",") {
				prop.Enum = append(prop.Enum, v)
			}
		}
		if def := field.Tag.Get("default"); def != "" {
			v, err := convertDefault(def, prop.Type)
			if err != nil {
				return nil, fmt.Errorf("mcpserver: field %s: %w", field.Name, err)
			}
			prop.Default = v
		}
		if field.Tag.Get("required") == "true" {
			required = append(required, name)
		}

		properties[name] = prop
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema, nil
}

func typeToPropertyDef(t reflect.Type) *propertyDef {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return &propertyDef{Type: "string"}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &propertyDef{Type: "integer"}

	case reflect.Float32, reflect.Float64:
		return &propertyDef{Type: "number"}

	case reflect.Bool:
		return &propertyDef{Type: "boolean"}

	case reflect.Slice, reflect.Array:
		return &propertyDef{Type: "array", Items: typeToPropertyDef(t.Elem())}

	case reflect.Struct:
		nested, err := buildStructSchema(t)
		if err != nil {
			return &propertyDef{Type: "object"}
		}
		prop := &propertyDef{Type: "object"}
		if props, ok := nested["properties"].(map[string]any); ok {
			prop.Properties = props
		}
		if req, ok := nested["required"].([]string); ok {
			prop.Required = req
		}
		return prop

	case reflect.Map:
		// Maps become objects with no defined properties
		return &propertyDef{Type: "object"}

	default:
		return &propertyDef{Type: "string"}
	}
}

func convertDefault(raw, schemaType string) (any, error) {
	switch schemaType {
	case "integer":
		return strconv.Atoi(raw)
	case "number":
		return strconv.ParseFloat(raw, 64)
	case "boolean":
		return strconv.ParseBool(raw)
	default:
		return raw, nil
	}
}
