// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package codec

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/tidwall/pretty"

	pkgmodel "github.com/platform-engineering-labs/albalias/pkg/model"
)

type JSON struct{}

var _ Codec = JSON{}

func (JSON) Name() string {
	return "json"
}

func (JSON) FileExtensions() []string {
	return []string{".json", ".template"}
}

func (JSON) Decode(data []byte) (*pkgmodel.Template, error) {
	n, err := pkgmodel.Decode(data)
	if err != nil {
		return nil, err
	}

	return pkgmodel.TemplateFromNode(n)
}

func (JSON) Serialize(t *pkgmodel.Template, options *SerializeOptions) ([]byte, error) {
	input, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("error marshalling JSON for template: %w", err)
	}

	data := append(input, '\n')
	if options != nil && options.Beautify {
		data = pretty.PrettyOptions(input, &pretty.Options{
			Width:    80,
			Prefix:   "",
			Indent:   "  ",
			SortKeys: true,
		})

		if data == nil {
			return nil, fmt.Errorf("error beautifying JSON")
		}
	}

	if options != nil && options.Colorize {
		data, err = Highlight(data, "json")
		if err != nil {
			return nil, fmt.Errorf("error colorizing JSON: %w", err)
		}
	}

	return data, nil
}
