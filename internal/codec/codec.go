// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package codec

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"

	pkgmodel "github.com/platform-engineering-labs/albalias/pkg/model"
)

// Codec reads and writes CloudFormation templates in one document format.
type Codec interface {
	Name() string
	FileExtensions() []string
	Decode(data []byte) (*pkgmodel.Template, error)
	Serialize(t *pkgmodel.Template, options *SerializeOptions) ([]byte, error)
}

type SerializeOptions struct {
	Beautify bool
	Colorize bool
}

var codecs = []Codec{JSON{}, YAML{}}

// ByName returns the codec registered under name ("json" or "yaml").
func ByName(name string) (Codec, error) {
	for _, c := range codecs {
		if c.Name() == strings.ToLower(name) {
			return c, nil
		}
	}

	return nil, fmt.Errorf("unsupported format '%s', supported formats are: %v", name, Names())
}

func Names() []string {
	names := make([]string, 0, len(codecs))
	for _, c := range codecs {
		names = append(names, c.Name())
	}
	return names
}

// Detect picks a codec from the file extension. Unknown extensions fall back
// to sniffing the content: a document starting with '{' is JSON.
func Detect(path string, data []byte) Codec {
	ext := strings.ToLower(filepath.Ext(path))
	for _, c := range codecs {
		for _, e := range c.FileExtensions() {
			if e == ext {
				return c
			}
		}
	}

	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return JSON{}
	}

	return YAML{}
}

// ReadFile loads a template and returns the codec it was read with.
func ReadFile(path string) (*pkgmodel.Template, Codec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read template: %w", err)
	}

	c := Detect(path, data)
	t, err := c.Decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode %s template %s: %w", c.Name(), path, err)
	}

	return t, c, nil
}

// Highlight colors code for a terminal using the chroma lexer of the given name.
func Highlight(code []byte, lexer string) ([]byte, error) {
	var buf bytes.Buffer
	err := quick.Highlight(&buf, string(code), lexer, "terminal", "vim")
	if err != nil {
		return nil, fmt.Errorf("highlight %s: %w", lexer, err)
	}

	return buf.Bytes(), nil
}
