// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServerlessNamer_NormalizedFunctionName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lower camel", in: "hello", want: "Hello"},
		{name: "already normalized", in: "Hello", want: "Hello"},
		{name: "dash", in: "say-hello", want: "SayDashhello"},
		{name: "underscore", in: "say_hello", want: "SayUnderscorehello"},
		{name: "leading dash", in: "-x", want: "Dashx"},
		{name: "empty", in: "", want: ""},
		{name: "non ascii", in: "ärger", want: "Ärger"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ServerlessNamer{}.NormalizedFunctionName(tt.in))
		})
	}
}

func TestTargetGroupName_IsStableMd5(t *testing.T) {
	name := TargetGroupName("Hello", "Live", "HelloAlbTargetGroupHttpListener")

	assert.Equal(t, "a0bc5fbd6116f0879a7959981fd9b167", name)
	assert.Len(t, name, 32)
	assert.Equal(t, name, TargetGroupName("Hello", "Live", "HelloAlbTargetGroupHttpListener"))
}

func TestTargetGroupName_DiffersPerInput(t *testing.T) {
	base := TargetGroupName("Hello", "Live", "HelloAlbTargetGroupHttpListener")

	assert.NotEqual(t, base, TargetGroupName("World", "Live", "HelloAlbTargetGroupHttpListener"))
	assert.NotEqual(t, base, TargetGroupName("Hello", "Canary", "HelloAlbTargetGroupHttpListener"))
	assert.NotEqual(t, base, TargetGroupName("Hello", "Live", "HelloAlbTargetGroupHttpsListener"))
}

func TestAliasRef(t *testing.T) {
	assert.Equal(t, "HelloAlias", AliasRef("Hello"))
}
