// Package constructed derives extra variables and groups from host
// variables using user-supplied HCL expressions, mirroring the
// compose / groups / keyed_groups trio of constructed inventories.
package constructed

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/canardconfit/gns3-inventory/internal/config"
)

// VarStore is the slice of the inventory the evaluator needs.
type VarStore interface {
	HostVars(host string) map[string]any
	SetVariable(host, key string, value any)
	AddChild(group, host string)
}

// EvalError is fatal only under strict mode; otherwise the failing
// expression is skipped for that host.
type EvalError struct {
	Host string
	Expr string
	Err  error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("constructed expression %q failed for host %s: %v", e.Expr, e.Host, e.Err)
}

func (e *EvalError) Unwrap() error {
	return e.Err
}

// Rules carries the raw expressions from the inventory source.
type Rules struct {
	Compose     map[string]string
	Groups      map[string]string
	KeyedGroups []config.KeyedGroup
	Strict      bool
}

type entry struct {
	name     string
	src      string
	expr     hcl.Expression
	parseErr error
}

type keyedEntry struct {
	entry
	rule config.KeyedGroup
}

// Evaluator holds parsed expressions for one run. Parse failures are
// recorded per expression and surface under the same strict gate as
// evaluation failures.
type Evaluator struct {
	compose []entry
	groups  []entry
	keyed   []keyedEntry
	strict  bool
}

func New(rules Rules) *Evaluator {
	e := &Evaluator{strict: rules.Strict}

	for _, name := range sortedKeys(rules.Compose) {
		e.compose = append(e.compose, parseEntry(name, rules.Compose[name]))
	}
	for _, name := range sortedKeys(rules.Groups) {
		e.groups = append(e.groups, parseEntry(name, rules.Groups[name]))
	}
	for _, rule := range rules.KeyedGroups {
		e.keyed = append(e.keyed, keyedEntry{
			entry: parseEntry(rule.Key, rule.Key),
			rule:  rule,
		})
	}

	return e
}

func parseEntry(name, src string) entry {
	expr, diags := hclsyntax.ParseExpression([]byte(src), name, hcl.InitialPos)
	ent := entry{name: name, src: src, expr: expr}
	if diags.HasErrors() {
		ent.parseErr = diags
	}
	return ent
}

// Apply evaluates every rule against one host's variables. Compose
// entries run first, in name order, and each result is visible to the
// entries after it.
func (e *Evaluator) Apply(store VarStore, host string) error {
	for _, ent := range e.compose {
		val, err := e.eval(ent, store.HostVars(host))
		if err != nil {
			if e.strict {
				return &EvalError{Host: host, Expr: ent.src, Err: err}
			}
			continue
		}
		store.SetVariable(host, ent.name, fromCty(val))
	}

	vars := store.HostVars(host)

	for _, ent := range e.groups {
		val, err := e.eval(ent, vars)
		if err != nil {
			if e.strict {
				return &EvalError{Host: host, Expr: ent.src, Err: err}
			}
			continue
		}
		if truthy(val) {
			store.AddChild(ent.name, host)
		}
	}

	for _, ent := range e.keyed {
		group, ok, err := e.keyedGroupName(ent, vars)
		if err != nil {
			if e.strict {
				return &EvalError{Host: host, Expr: ent.src, Err: err}
			}
			continue
		}
		if ok {
			store.AddChild(group, host)
		}
	}

	return nil
}

func (e *Evaluator) eval(ent entry, vars map[string]any) (cty.Value, error) {
	if ent.parseErr != nil {
		return cty.NilVal, ent.parseErr
	}
	val, diags := ent.expr.Value(evalContext(vars))
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	return val, nil
}

func (e *Evaluator) keyedGroupName(ent keyedEntry, vars map[string]any) (string, bool, error) {
	val, err := e.eval(ent.entry, vars)
	if err != nil {
		return "", false, err
	}

	value := formatValue(val)
	if value == "" {
		if ent.rule.DefaultValue == "" {
			if e.strict {
				return "", false, fmt.Errorf("no key value and no default_value")
			}
			return "", false, nil
		}
		value = ent.rule.DefaultValue
	}

	sep := ent.rule.Separator
	if sep == "" {
		sep = "_"
	}

	name := value
	if ent.rule.Prefix != "" {
		name = ent.rule.Prefix + sep + value
	}
	return sanitizeGroupName(name, sep), true, nil
}

// evalContext exposes host variables to expressions by their bare
// names, e.g. `gns3_status == "started"`.
func evalContext(vars map[string]any) *hcl.EvalContext {
	ctyVars := make(map[string]cty.Value, len(vars))
	for name, value := range vars {
		ctyVars[name] = toCty(value)
	}
	return &hcl.EvalContext{Variables: ctyVars}
}

var invalidGroupChars = regexp.MustCompile(`[^A-Za-z0-9_]+`)

func sanitizeGroupName(name, sep string) string {
	if sep == "" || invalidGroupChars.MatchString(sep) {
		sep = "_"
	}
	return invalidGroupChars.ReplaceAllString(name, sep)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
