// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package codec

import json "github.com/goccy/go-json"

func jsonNumber(s string) json.Number {
	return json.Number(s)
}
