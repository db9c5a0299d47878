// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package partition

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/segmentio/ksuid"

	pkgmodel "github.com/platform-engineering-labs/albalias/pkg/model"
)

// Partitioner moves the load balancer resources of each function from the stage
// stack into the alias stack. Initialize and Run are the two halves of one pass
// and share state only through the Extraction returned by Initialize.
type Partitioner struct {
	alias  string
	namer  Namer
	logger *slog.Logger
}

type Option func(*Partitioner)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Partitioner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPartitioner normalizes alias with namer, so "live" becomes "Live".
func NewPartitioner(alias string, namer Namer, opts ...Option) (*Partitioner, error) {
	const op = "new partitioner"
	if namer == nil {
		return nil, contractErrorf(op, "a namer is required")
	}
	if strings.TrimSpace(alias) == "" {
		return nil, contractErrorf(op, "an alias is required")
	}

	p := &Partitioner{
		alias:  namer.NormalizedFunctionName(alias),
		namer:  namer,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Alias returns the normalized alias suffix.
func (p *Partitioner) Alias() string {
	return p.alias
}

// Extraction holds the resources pulled out of the stage stack until Run consumes them.
type Extraction struct {
	RunID        string
	Permissions  pkgmodel.Resources
	Rules        pkgmodel.Resources
	TargetGroups pkgmodel.Resources

	consumed bool
}

// IDs returns every extracted identifier in sorted order.
func (e *Extraction) IDs() []string {
	all := pkgmodel.Resources{}
	all.Merge(e.Permissions)
	all.Merge(e.Rules)
	all.Merge(e.TargetGroups)

	return all.IDs()
}

func (e *Extraction) Len() int {
	return len(e.Permissions) + len(e.Rules) + len(e.TargetGroups)
}

// Initialize classifies the permissions, listener rules and target groups of
// source and removes them from it.
func (p *Partitioner) Initialize(source *pkgmodel.Template) (*Extraction, error) {
	const op = "initialize"
	if source == nil {
		return nil, contractErrorf(op, "source template is required")
	}
	if source.Resources == nil {
		return nil, contractErrorf(op, "source template has no %s section", pkgmodel.KeyResources)
	}

	ext := &Extraction{
		RunID:        ksuid.New().String(),
		Permissions:  Classify(source.Resources, KindPermission),
		Rules:        Classify(source.Resources, KindListenerRule),
		TargetGroups: Classify(source.Resources, KindTargetGroup),
	}

	for _, id := range ext.IDs() {
		delete(source.Resources, id)
	}

	p.logger.Info("Extracted load balancer resources from stage stack",
		"run", ext.RunID,
		"permissions", len(ext.Permissions),
		"listenerRules", len(ext.Rules),
		"targetGroups", len(ext.TargetGroups))

	return ext, nil
}

// Run renames the extracted resources of every function in functions and merges
// them into target. Nothing is written to target unless every function succeeds.
// Extracted resources that belong to none of the functions are dropped.
func (p *Partitioner) Run(ext *Extraction, target *pkgmodel.Template, functions []string) (*Result, error) {
	const op = "run"
	if ext == nil {
		return nil, contractErrorf(op, "extraction is required")
	}
	if ext.consumed {
		return nil, fmt.Errorf("%s: %w", op, ErrExtractionConsumed)
	}
	if target == nil {
		return nil, contractErrorf(op, "alias template is required")
	}
	if target.Resources == nil {
		return nil, contractErrorf(op, "alias template has no %s section", pkgmodel.KeyResources)
	}
	ext.consumed = true

	result := &Result{RunID: ext.RunID, Alias: p.alias}
	staged := pkgmodel.Resources{}
	claimedBy := map[string][]string{}

	for _, name := range functions {
		fr, moved, err := p.partitionFunction(ext, name)
		if err != nil {
			return nil, fmt.Errorf("%s: function %s: %w", op, name, err)
		}
		for old := range fr.Renames {
			claimedBy[old] = append(claimedBy[old], fr.Normalized)
		}
		staged.Merge(moved)
		result.Functions = append(result.Functions, *fr)
	}

	for _, id := range ext.IDs() {
		owners, ok := claimedBy[id]
		if !ok {
			result.Pruned = append(result.Pruned, id)
			continue
		}
		if len(owners) > 1 {
			p.logger.Warn("Resource identifier matches more than one function prefix",
				"run", ext.RunID, "resource", id, "functions", owners)
		}
	}

	target.Resources.Merge(staged)
	result.Moved = staged.IDs()

	if len(result.Pruned) > 0 {
		p.logger.Info("Dropped resources of undeclared functions", "run", ext.RunID, "resources", result.Pruned)
	}
	p.logger.Info("Merged load balancer resources into alias stack",
		"run", ext.RunID, "alias", p.alias, "functions", len(result.Functions), "moved", len(result.Moved))

	return result, nil
}

func (p *Partitioner) partitionFunction(ext *Extraction, name string) (*FunctionResult, pkgmodel.Resources, error) {
	fn := p.namer.NormalizedFunctionName(name)
	aliasRef := AliasRef(fn)

	permissions := cloneResources(Route(ext.Permissions, fn))
	rules := cloneResources(Route(ext.Rules, fn))
	targetGroups := cloneResources(Route(ext.TargetGroups, fn))

	for _, id := range targetGroups.IDs() {
		if err := p.pointTargetGroupAtAlias(id, targetGroups[id], fn, aliasRef); err != nil {
			return nil, nil, err
		}
	}
	for _, id := range permissions.IDs() {
		if err := pointPermissionAtAlias(id, permissions[id], aliasRef); err != nil {
			return nil, nil, err
		}
	}

	renames := NewRenameMap(fn, p.alias, permissions, rules, targetGroups)
	if !renames.Injective() {
		p.logger.Warn("Rename map is not injective, references may collide",
			"run", ext.RunID, "function", fn)
	}

	combined := pkgmodel.Resources{}
	combined.Merge(permissions)
	combined.Merge(rules)
	combined.Merge(targetGroups)

	node := combined.Node()
	renames.Apply(node)
	moved, _ := pkgmodel.ResourcesFromNode(node)

	for _, pair := range renames.Pairs() {
		p.logger.Debug("Renamed resource", "run", ext.RunID, "function", fn, "from", pair.Old, "to", pair.New)
	}

	return &FunctionResult{Function: name, Normalized: fn, Renames: renames}, moved, nil
}

func (p *Partitioner) pointTargetGroupAtAlias(id string, tg pkgmodel.Resource, fn, aliasRef string) error {
	props := tg.Properties()
	targets, _ := props["Targets"].(pkgmodel.Sequence)
	if len(targets) == 0 {
		return &ResourceError{ID: id, Type: tg.Type(), Reason: "Properties.Targets has no entries"}
	}
	first, ok := targets[0].(pkgmodel.Mapping)
	if !ok {
		return &ResourceError{ID: id, Type: tg.Type(), Reason: "Properties.Targets[0] is not an object"}
	}

	first["Id"] = pkgmodel.Ref(aliasRef)
	tg.AppendDependsOn(aliasRef)
	props["Name"] = pkgmodel.String(TargetGroupName(fn, p.alias, id))

	return nil
}

func pointPermissionAtAlias(id string, perm pkgmodel.Resource, aliasRef string) error {
	props := perm.Properties()
	if props == nil {
		return &ResourceError{ID: id, Type: perm.Type(), Reason: "Properties is missing"}
	}

	props["FunctionName"] = pkgmodel.Ref(aliasRef)
	perm.AppendDependsOn(aliasRef)

	return nil
}

func cloneResources(rs pkgmodel.Resources) pkgmodel.Resources {
	clone := make(pkgmodel.Resources, len(rs))
	for id, r := range rs {
		clone[id] = r.Clone()
	}
	return clone
}

// FunctionResult describes the renames applied for one function.
type FunctionResult struct {
	Function   string
	Normalized string
	Renames    RenameMap
}

// Result summarizes a Run.
type Result struct {
	RunID     string
	Alias     string
	Functions []FunctionResult
	// Moved lists the new identifiers merged into the alias stack.
	Moved []string
	// Pruned lists extracted identifiers no function claimed.
	Pruned []string
}

// Renamed returns every old -> new pair across functions, ordered by old identifier.
func (r *Result) Renamed() []RenamePair {
	var pairs []RenamePair
	for _, fr := range r.Functions {
		pairs = append(pairs, fr.Renames.Pairs()...)
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].Old < pairs[j].Old })
	return pairs
}
