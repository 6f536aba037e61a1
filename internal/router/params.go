package router

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"compcat/internal/catalog"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// ListComponentsParams are the parameters of list_components.
type ListComponentsParams struct {
	Category *string  `json:"category"`
	Tags     []string `json:"tags"`
	Search   *string  `json:"search"`
	Limit    *int     `json:"limit" validate:"omitempty,min=0"`
}

// GetComponentParams are the parameters of get_component.
type GetComponentParams struct {
	Name              string `json:"name" validate:"notblank"`
	IncludeExamples   *bool  `json:"include_examples"`
	IncludeTypescript *bool  `json:"include_typescript"`
}

// SearchComponentsParams are the parameters of search_components.
type SearchComponentsParams struct {
	Query      string   `json:"query" validate:"notblank"`
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
	Limit      *int     `json:"limit" validate:"omitempty,min=0"`
}

// GetDocumentationParams are the parameters of get_documentation.
type GetDocumentationParams struct {
	Topic   string  `json:"topic" validate:"notblank"`
	Section *string `json:"section"`
}

// ReadResourceParams are the parameters of read_resource.
type ReadResourceParams struct {
	URI string `json:"uri" validate:"notblank"`
}

// NoParams is used by operations that take no input.
type NoParams struct{}

// newValidator returns a validator that reports JSON field names and
// knows the notblank rule used by the parameter structs.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("failed to register notblank validation: %v", err))
	}
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeParams strictly decodes raw into dst and validates it. An empty
// or null payload decodes as an empty object.
func decodeParams(v *validator.Validate, op string, raw json.RawMessage, dst any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.DisallowUnknownFields()
		if err := dec.Decode(dst); err != nil {
			return catalog.InvalidParams("Malformed parameters", map[string]any{
				"operation": op,
				"error":     err.Error(),
			})
		}
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return catalog.InvalidParams("Malformed parameters", map[string]any{
				"operation": op,
				"error":     "unexpected data after parameters object",
			})
		}
	}

	if err := v.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return catalog.InvalidParams(fmt.Sprintf("Invalid value for %q", fe.Field()), map[string]any{
				"operation": op,
				"field":     fe.Field(),
				"rule":      fe.Tag(),
			})
		}
		return fmt.Errorf("validating %s parameters: %w", op, err)
	}
	return nil
}
