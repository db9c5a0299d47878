// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package partition

import (
	"errors"
	"log/slog"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/platform-engineering-labs/albalias/internal/logging"
	pkgmodel "github.com/platform-engineering-labs/albalias/pkg/model"
)

func newTestPartitioner(t *testing.T, opts ...Option) *Partitioner {
	t.Helper()

	p, err := NewPartitioner("live", ServerlessNamer{}, opts...)
	require.NoError(t, err)

	return p
}

func marshal(t *testing.T, tpl *pkgmodel.Template) gjson.Result {
	t.Helper()

	out, err := json.Marshal(tpl)
	require.NoError(t, err)

	return gjson.ParseBytes(out)
}

func TestNewPartitioner_NormalizesAlias(t *testing.T) {
	p := newTestPartitioner(t)
	assert.Equal(t, "Live", p.Alias())
}

func TestNewPartitioner_RejectsMissingArguments(t *testing.T) {
	_, err := NewPartitioner("", ServerlessNamer{})
	assert.ErrorIs(t, err, ErrContractViolation)

	_, err = NewPartitioner("  ", ServerlessNamer{})
	assert.ErrorIs(t, err, ErrContractViolation)

	_, err = NewPartitioner("live", nil)
	assert.ErrorIs(t, err, ErrContractViolation)

	var contractErr *ContractError
	require.ErrorAs(t, err, &contractErr)
	assert.Equal(t, "new partitioner", contractErr.Op)
}

func TestInitialize_RemovesExtractedResourcesFromStage(t *testing.T) {
	stage := loadTemplate(t, "stage.json")
	p := newTestPartitioner(t)

	ext, err := p.Initialize(stage)
	require.NoError(t, err)

	assert.NotEmpty(t, ext.RunID)
	assert.Equal(t, 7, ext.Len())
	assert.Equal(t, []string{
		"HelloLambdaFunction",
		"HelloLambdaPermissionApiGateway",
		"ServerlessDeploymentBucket",
	}, stage.Resources.IDs())
	assert.Equal(t, []string{"HelloLambdaPermissionAlb", "WorldLambdaPermissionAlb"}, ext.Permissions.IDs())
	assert.Equal(t, []string{"HelloAlbListenerRule1", "WorldAlbListenerRule2"}, ext.Rules.IDs())
	assert.Len(t, ext.TargetGroups, 3)
}

func TestInitialize_MissingResourcesIsContractViolation(t *testing.T) {
	p := newTestPartitioner(t)

	_, err := p.Initialize(&pkgmodel.Template{Sections: pkgmodel.Mapping{}})
	assert.ErrorIs(t, err, ErrContractViolation)

	_, err = p.Initialize(nil)
	assert.ErrorIs(t, err, ErrContractViolation)
}

func TestInitialize_NothingToExtract(t *testing.T) {
	stage := pkgmodel.NewTemplate()
	stage.Resources["HelloLambdaFunction"] = resource("AWS::Lambda::Function", pkgmodel.Mapping{})
	p := newTestPartitioner(t)

	ext, err := p.Initialize(stage)
	require.NoError(t, err)

	assert.Zero(t, ext.Len())
	assert.NotNil(t, ext.Permissions)
	assert.Len(t, stage.Resources, 1)
}

func TestRun_MovesAndRenamesFunctionResources(t *testing.T) {
	stage := loadTemplate(t, "stage.json")
	alias := loadTemplate(t, "alias.json")
	p := newTestPartitioner(t)

	ext, err := p.Initialize(stage)
	require.NoError(t, err)

	result, err := p.Run(ext, alias, []string{"hello", "world"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"HelloAlias",
		"HelloLiveAlbListenerRule1",
		"HelloLiveAlbTargetGroupHttpListener",
		"HelloLiveLambdaPermissionAlb",
		"WorldAlias",
		"WorldLiveAlbListenerRule2",
		"WorldLiveAlbTargetGroupHttpListener",
		"WorldLiveLambdaPermissionAlb",
	}, alias.Resources.IDs())

	doc := marshal(t, alias)

	tg := doc.Get("Resources.HelloLiveAlbTargetGroupHttpListener")
	assert.Equal(t, "HelloAlias", tg.Get("Properties.Targets.0.Id.Ref").String())
	assert.Equal(t, "a0bc5fbd6116f0879a7959981fd9b167", tg.Get("Properties.Name").String())
	assert.Equal(t, `["HelloLiveLambdaPermissionAlb","HelloAlias"]`, tg.Get("DependsOn").Raw)
	assert.Equal(t, "false", tg.Get("Properties.HealthCheckEnabled").Raw)

	rule := doc.Get("Resources.HelloLiveAlbListenerRule1")
	assert.Equal(t, "HelloLiveAlbTargetGroupHttpListener", rule.Get("Properties.Actions.0.TargetGroupArn.Ref").String())
	assert.Equal(t, "1", rule.Get("Properties.Priority").Raw)
	assert.False(t, rule.Get("DependsOn").Exists())

	perm := doc.Get("Resources.HelloLiveLambdaPermissionAlb")
	assert.Equal(t, "HelloAlias", perm.Get("Properties.FunctionName.Ref").String())
	assert.Equal(t, "HelloLiveAlbTargetGroupHttpListener", perm.Get("Properties.SourceArn.Ref").String())
	assert.Equal(t, `["HelloAlias"]`, perm.Get("DependsOn").Raw)

	worldTG := doc.Get("Resources.WorldLiveAlbTargetGroupHttpListener")
	assert.Equal(t, `["WorldLiveLambdaPermissionAlb","WorldAlias"]`, worldTG.Get("DependsOn").Raw)
	assert.Equal(t, "f23ebb174d253df5393f5db4a1e8b99c", worldTG.Get("Properties.Name").String())

	assert.Equal(t, []string{"RetiredAlbTargetGroupHttpListener"}, result.Pruned)
	assert.Len(t, result.Moved, 6)
	require.Len(t, result.Functions, 2)
	assert.Equal(t, "Hello", result.Functions[0].Normalized)
	assert.Equal(t, "hello", result.Functions[0].Function)
	assert.Equal(t, "HelloLiveAlbListenerRule1", result.Functions[0].Renames["HelloAlbListenerRule1"])
	assert.Equal(t, "Live", result.Alias)
	assert.Equal(t, ext.RunID, result.RunID)
}

func TestRun_NoStaleIdentifiersRemainInMovedResources(t *testing.T) {
	stage := loadTemplate(t, "stage.json")
	alias := loadTemplate(t, "alias.json")
	p := newTestPartitioner(t)

	ext, err := p.Initialize(stage)
	require.NoError(t, err)
	_, err = p.Run(ext, alias, []string{"hello", "world"})
	require.NoError(t, err)

	out, err := json.Marshal(alias)
	require.NoError(t, err)

	for _, old := range []string{
		`"HelloAlbTargetGroupHttpListener"`,
		`"HelloAlbListenerRule1"`,
		`"HelloLambdaPermissionAlb"`,
		`"WorldAlbTargetGroupHttpListener"`,
		`"WorldLambdaPermissionAlb"`,
	} {
		assert.NotContains(t, string(out), old)
	}
}

func TestRun_SingleFunctionScenario(t *testing.T) {
	stage := pkgmodel.NewTemplate()
	stage.Resources["MyFnAlbTargetGroupAbc"] = lambdaTargetGroup("MyFn")
	stage.Resources["MyFnPermissionXyz"] = albPermission("MyFn")
	alias := pkgmodel.NewTemplate()
	p := newTestPartitioner(t)

	ext, err := p.Initialize(stage)
	require.NoError(t, err)
	_, err = p.Run(ext, alias, []string{"myFn"})
	require.NoError(t, err)

	assert.Empty(t, stage.Resources)
	assert.Equal(t, []string{"MyFnLiveAlbTargetGroupAbc", "MyFnLivePermissionXyz"}, alias.Resources.IDs())

	tg := alias.Resources["MyFnLiveAlbTargetGroupAbc"]
	assert.Contains(t, tg.DependsOn(), "MyFnAlias")
	name, _ := tg.Property("Name")
	assert.Equal(t, "a150dfc1b702abef7778eb57550ab0b5", name)
	assert.Contains(t, alias.Resources["MyFnLivePermissionXyz"].DependsOn(), "MyFnAlias")
}

func TestRun_OrphanResourcesArePruned(t *testing.T) {
	stage := loadTemplate(t, "stage.json")
	alias := loadTemplate(t, "alias.json")
	p := newTestPartitioner(t)

	ext, err := p.Initialize(stage)
	require.NoError(t, err)
	result, err := p.Run(ext, alias, []string{"hello"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"RetiredAlbTargetGroupHttpListener",
		"WorldAlbListenerRule2",
		"WorldAlbTargetGroupHttpListener",
		"WorldLambdaPermissionAlb",
	}, result.Pruned)
	assert.NotContains(t, stage.Resources, "WorldAlbTargetGroupHttpListener")
	for _, id := range alias.Resources.IDs() {
		assert.NotContains(t, id, "WorldLive")
		assert.NotContains(t, id, "Retired")
	}
}

func TestRun_DoesNotMutateExtraction(t *testing.T) {
	stage := loadTemplate(t, "stage.json")
	alias := loadTemplate(t, "alias.json")
	p := newTestPartitioner(t)

	ext, err := p.Initialize(stage)
	require.NoError(t, err)
	before := pkgmodel.Clone(ext.TargetGroups.Node())

	_, err = p.Run(ext, alias, []string{"hello", "world"})
	require.NoError(t, err)

	assert.Equal(t, before, ext.TargetGroups.Node())
}

func TestRun_ExtractionIsConsumedOnce(t *testing.T) {
	stage := loadTemplate(t, "stage.json")
	p := newTestPartitioner(t)

	ext, err := p.Initialize(stage)
	require.NoError(t, err)

	_, err = p.Run(ext, pkgmodel.NewTemplate(), []string{"hello"})
	require.NoError(t, err)

	_, err = p.Run(ext, pkgmodel.NewTemplate(), []string{"hello"})
	assert.ErrorIs(t, err, ErrExtractionConsumed)
}

func TestRun_ContractViolations(t *testing.T) {
	p := newTestPartitioner(t)

	_, err := p.Run(nil, pkgmodel.NewTemplate(), nil)
	assert.ErrorIs(t, err, ErrContractViolation)

	ext, err := p.Initialize(pkgmodel.NewTemplate())
	require.NoError(t, err)
	_, err = p.Run(ext, nil, nil)
	assert.ErrorIs(t, err, ErrContractViolation)

	_, err = p.Run(ext, &pkgmodel.Template{}, nil)
	assert.ErrorIs(t, err, ErrContractViolation)
}

func TestRun_MalformedTargetGroupLeavesAliasUntouched(t *testing.T) {
	stage := pkgmodel.NewTemplate()
	stage.Resources["HelloAlbTargetGroup"] = lambdaTargetGroup("Hello")
	stage.Resources["WorldAlbTargetGroup"] = resource(pkgmodel.TypeTargetGroup, pkgmodel.Mapping{
		"TargetType": pkgmodel.String("lambda"),
	})
	alias := pkgmodel.NewTemplate()
	alias.Resources["HelloAlias"] = resource("AWS::Lambda::Alias", pkgmodel.Mapping{})
	p := newTestPartitioner(t)

	ext, err := p.Initialize(stage)
	require.NoError(t, err)

	_, err = p.Run(ext, alias, []string{"hello", "world"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResource)

	var resErr *ResourceError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, "WorldAlbTargetGroup", resErr.ID)
	assert.Equal(t, []string{"HelloAlias"}, alias.Resources.IDs())
}

func TestRun_MalformedPermission(t *testing.T) {
	ext := &Extraction{
		Permissions: pkgmodel.Resources{
			"HelloLambdaPermissionAlb": pkgmodel.Resource{"Type": pkgmodel.String(pkgmodel.TypePermission)},
		},
	}
	p := newTestPartitioner(t)

	_, err := p.Run(ext, pkgmodel.NewTemplate(), []string{"hello"})
	assert.ErrorIs(t, err, ErrMalformedResource)
}

func TestRun_WarnsWhenFunctionPrefixesOverlap(t *testing.T) {
	capture := logging.NewTestLogCaptureQuiet()
	logger := slog.New(slog.NewTextHandler(capture, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := newTestPartitioner(t, WithLogger(logger))

	stage := pkgmodel.NewTemplate()
	stage.Resources["ApiAlbTargetGroup"] = lambdaTargetGroup("Api")
	stage.Resources["ApiAdminAlbTargetGroup"] = lambdaTargetGroup("ApiAdmin")
	alias := pkgmodel.NewTemplate()

	ext, err := p.Initialize(stage)
	require.NoError(t, err)
	_, err = p.Run(ext, alias, []string{"api", "apiAdmin"})
	require.NoError(t, err)

	// The Api function also claims ApiAdmin's target group.
	assert.Equal(t, []string{
		"ApiAdminLiveAlbTargetGroup",
		"ApiLiveAdminAlbTargetGroup",
		"ApiLiveAlbTargetGroup",
	}, alias.Resources.IDs())
	assert.True(t, capture.ContainsAll("matches more than one function prefix", "ApiAdminAlbTargetGroup"))
	assert.True(t, capture.ContainsAll("Renamed resource", "Extracted load balancer resources"))
}

func TestResult_Renamed(t *testing.T) {
	result := &Result{Functions: []FunctionResult{
		{Renames: RenameMap{"b": "bb"}},
		{Renames: RenameMap{"a": "aa"}},
	}}

	assert.Equal(t, []RenamePair{{Old: "a", New: "aa"}, {Old: "b", New: "bb"}}, result.Renamed())
}
