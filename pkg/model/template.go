// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

import (
	"fmt"

	json "github.com/goccy/go-json"
)

const KeyResources = "Resources"

// Template is a compiled CloudFormation template. Resources is nil when the
// source document had no Resources section at all.
type Template struct {
	Resources Resources
	// Every other top level section, kept verbatim.
	Sections Mapping
}

func NewTemplate() *Template {
	return &Template{
		Resources: Resources{},
		Sections:  Mapping{},
	}
}

// TemplateFromNode splits a decoded document into its Resources and the remaining sections.
func TemplateFromNode(n Node) (*Template, error) {
	doc, ok := n.(Mapping)
	if !ok {
		return nil, fmt.Errorf("template must be an object, got %T", n)
	}

	t := &Template{Sections: Mapping{}}
	for k, v := range doc {
		if k != KeyResources {
			t.Sections[k] = v
			continue
		}
		resources, ok := v.(Mapping)
		if !ok {
			return nil, fmt.Errorf("template %s section must be an object, got %T", KeyResources, v)
		}
		rs, skipped := ResourcesFromNode(resources)
		if len(skipped) > 0 {
			return nil, fmt.Errorf("template resources %v are not objects", skipped)
		}
		t.Resources = rs
	}

	return t, nil
}

// Node reassembles the template into a single document.
func (t *Template) Node() Mapping {
	doc := make(Mapping, len(t.Sections)+1)
	for k, v := range t.Sections {
		doc[k] = v
	}
	if t.Resources != nil {
		doc[KeyResources] = t.Resources.Node()
	}
	return doc
}

func (t *Template) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToAny(t.Node()))
}

func (t *Template) UnmarshalJSON(data []byte) error {
	n, err := Decode(data)
	if err != nil {
		return err
	}
	parsed, err := TemplateFromNode(n)
	if err != nil {
		return err
	}
	*t = *parsed

	return nil
}
