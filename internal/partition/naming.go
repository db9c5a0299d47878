// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package partition

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Namer maps a user facing function name to the prefix its compiled resources
// are named with.
type Namer interface {
	NormalizedFunctionName(name string) string
}

// ServerlessNamer follows the serverless framework's logical id convention:
// "-" becomes "Dash", "_" becomes "Underscore" and the first letter is upper cased.
type ServerlessNamer struct{}

var _ Namer = ServerlessNamer{}

func (ServerlessNamer) NormalizedFunctionName(name string) string {
	name = strings.ReplaceAll(name, "-", "Dash")
	name = strings.ReplaceAll(name, "_", "Underscore")

	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// AliasRef is the logical id of the function's alias resource in the alias stack.
func AliasRef(normalizedFunction string) string {
	return normalizedFunction + "Alias"
}

// TargetGroupName derives the physical name of a moved target group. Target group
// names are limited to 32 characters, which is exactly the length of a hex md5.
func TargetGroupName(normalizedFunction, alias, resourceID string) string {
	sum := md5.Sum([]byte(normalizedFunction + alias + resourceID))
	return hex.EncodeToString(sum[:])
}
