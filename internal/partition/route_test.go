// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"

	pkgmodel "github.com/platform-engineering-labs/albalias/pkg/model"
)

func TestRoute_KeepsResourcesPrefixedByFunction(t *testing.T) {
	resources := pkgmodel.Resources{
		"HelloAlbTargetGroupHttp": lambdaTargetGroup("Hello"),
		"WorldAlbTargetGroupHttp": lambdaTargetGroup("World"),
	}

	result := Route(resources, "Hello")

	assert.Equal(t, []string{"HelloAlbTargetGroupHttp"}, result.IDs())
}

func TestRoute_PrefixOnlyNotSubstring(t *testing.T) {
	resources := pkgmodel.Resources{
		"SayHelloAlbTargetGroupHttp": lambdaTargetGroup("SayHello"),
	}

	assert.Empty(t, Route(resources, "Hello"))
}

// A function name that is a prefix of another function name claims that
// function's resources too. This is a known limitation kept for compatibility.
func TestRoute_PrefixIsNotBoundaryAware(t *testing.T) {
	resources := pkgmodel.Resources{
		"ApiAlbTargetGroupHttp":      lambdaTargetGroup("Api"),
		"ApiAdminAlbTargetGroupHttp": lambdaTargetGroup("ApiAdmin"),
	}

	result := Route(resources, "Api")

	assert.Equal(t, []string{"ApiAdminAlbTargetGroupHttp", "ApiAlbTargetGroupHttp"}, result.IDs())
}

func TestRoute_IsIdempotent(t *testing.T) {
	tpl := loadTemplate(t, "stage.json")

	once := Route(tpl.Resources, "Hello")
	twice := Route(once, "Hello")

	assert.Equal(t, once, twice)
}

func TestRoute_EmptyInput(t *testing.T) {
	assert.Empty(t, Route(pkgmodel.Resources{}, "Hello"))
	assert.NotNil(t, Route(nil, "Hello"))
}
