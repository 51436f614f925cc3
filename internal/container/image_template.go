package container

import (
	"bytes"
	"errors"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// RenderImage expands an image document template. Values are available as
// {{ .name }}; a value that was not given expands to the empty string, so
// documents can use sprig's default and the required function:
//
//	env:
//	  POSTGRES_PASSWORD: {{ .password | default "secret" }}
//	  POSTGRES_DB: {{ required "db is required" .db }}
func RenderImage(data []byte, values map[string]string) ([]byte, error) {
	tmpl, err := parseImageTemplate(data)
	if err != nil {
		return nil, err
	}
	if values == nil {
		values = map[string]string{}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, values); err != nil {
		return nil, fmt.Errorf("failed to render image document: %w", err)
	}
	return buf.Bytes(), nil
}

// ValidateImageTemplate checks the template syntax of an image document
// without rendering it.
func ValidateImageTemplate(data []byte) error {
	_, err := parseImageTemplate(data)
	return err
}

// LoadImageTemplate renders data with values and parses the result.
func LoadImageTemplate(data []byte, values map[string]string) (Image, error) {
	rendered, err := RenderImage(data, values)
	if err != nil {
		return Image{}, err
	}
	return LoadImage(rendered)
}

// imageFuncs is the sprig function map plus required, which sprig leaves to
// Helm.
func imageFuncs() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["required"] = func(msg string, v interface{}) (interface{}, error) {
		if v == nil || v == "" {
			return nil, errors.New(msg)
		}
		return v, nil
	}
	return funcs
}

func parseImageTemplate(data []byte) (*template.Template, error) {
	tmpl, err := template.New("image").
		Option("missingkey=zero").
		Funcs(imageFuncs()).
		Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse image document template: %w", err)
	}
	return tmpl, nil
}
