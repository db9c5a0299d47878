// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package partition

import (
	"strings"

	pkgmodel "github.com/platform-engineering-labs/albalias/pkg/model"
)

// Route returns the resources whose identifier starts with functionID.
//
// The match is a plain prefix test: a function named Api also claims the
// resources of ApiAdmin. Callers are expected to live with that, the
// partitioner only warns about it.
func Route(resources pkgmodel.Resources, functionID string) pkgmodel.Resources {
	result := pkgmodel.Resources{}
	for id, r := range resources {
		if strings.HasPrefix(id, functionID) {
			result[id] = r
		}
	}

	return result
}
