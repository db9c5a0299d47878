// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package partition

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pkgmodel "github.com/platform-engineering-labs/albalias/pkg/model"
)

func loadTemplate(t *testing.T, name string) *pkgmodel.Template {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	n, err := pkgmodel.Decode(data)
	require.NoError(t, err)

	tpl, err := pkgmodel.TemplateFromNode(n)
	require.NoError(t, err)

	return tpl
}

func resource(resourceType string, props pkgmodel.Mapping) pkgmodel.Resource {
	return pkgmodel.Resource{
		"Type":       pkgmodel.String(resourceType),
		"Properties": props,
	}
}

func lambdaTargetGroup(function string) pkgmodel.Resource {
	return resource(pkgmodel.TypeTargetGroup, pkgmodel.Mapping{
		"TargetType": pkgmodel.String("lambda"),
		"Targets": pkgmodel.Sequence{
			pkgmodel.Mapping{"Id": pkgmodel.String(function + "LambdaFunction")},
		},
	})
}

func albPermission(function string) pkgmodel.Resource {
	return resource(pkgmodel.TypePermission, pkgmodel.Mapping{
		"FunctionName": pkgmodel.String(function + "LambdaFunction"),
		"Principal":    pkgmodel.String(pkgmodel.LoadBalancerPrincipal),
	})
}
