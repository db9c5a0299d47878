// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const stageTemplate = `{
  "AWSTemplateFormatVersion": "2010-09-09",
  "Resources": {
    "HelloLambdaFunction": {"Type": "AWS::Lambda::Function", "Properties": {"MemorySize": 1024}},
    "HelloAlbTargetGroupHttp": {"Type": "AWS::ElasticLoadBalancingV2::TargetGroup"}
  },
  "Outputs": {"ServerlessDeploymentBucketName": {"Value": {"Ref": "ServerlessDeploymentBucket"}}}
}`

func TestTemplate_UnmarshalSplitsSections(t *testing.T) {
	var tpl Template
	require.NoError(t, json.Unmarshal([]byte(stageTemplate), &tpl))

	assert.Equal(t, []string{"HelloAlbTargetGroupHttp", "HelloLambdaFunction"}, tpl.Resources.IDs())
	assert.Equal(t, []string{"AWSTemplateFormatVersion", "Outputs"}, tpl.Sections.Keys())
	assert.Equal(t, TypeTargetGroup, tpl.Resources["HelloAlbTargetGroupHttp"].Type())
}

func TestTemplate_MarshalReassembles(t *testing.T) {
	var tpl Template
	require.NoError(t, json.Unmarshal([]byte(stageTemplate), &tpl))
	delete(tpl.Resources, "HelloAlbTargetGroupHttp")

	out, err := json.Marshal(&tpl)
	require.NoError(t, err)

	parsed := gjson.ParseBytes(out)
	assert.Equal(t, "2010-09-09", parsed.Get("AWSTemplateFormatVersion").String())
	assert.Equal(t, "1024", parsed.Get("Resources.HelloLambdaFunction.Properties.MemorySize").Raw)
	assert.False(t, parsed.Get("Resources.HelloAlbTargetGroupHttp").Exists())
	assert.Equal(t, "ServerlessDeploymentBucket", parsed.Get("Outputs.ServerlessDeploymentBucketName.Value.Ref").String())
}

func TestTemplate_MissingResourcesSectionIsNil(t *testing.T) {
	var tpl Template
	require.NoError(t, json.Unmarshal([]byte(`{"Outputs": {}}`), &tpl))

	assert.Nil(t, tpl.Resources)

	out, err := json.Marshal(&tpl)
	require.NoError(t, err)
	assert.False(t, gjson.GetBytes(out, "Resources").Exists())
}

func TestTemplateFromNode_RejectsMalformedDocuments(t *testing.T) {
	_, err := TemplateFromNode(Sequence{})
	assert.Error(t, err)

	_, err = TemplateFromNode(Mapping{"Resources": String("x")})
	assert.Error(t, err)

	_, err = TemplateFromNode(Mapping{"Resources": Mapping{"A": String("x")}})
	assert.Error(t, err)
}

func TestNewTemplate_IsEmpty(t *testing.T) {
	tpl := NewTemplate()
	assert.NotNil(t, tpl.Resources)
	assert.Empty(t, tpl.Resources)
	assert.Equal(t, Mapping{"Resources": Mapping{}}, tpl.Node())
}
