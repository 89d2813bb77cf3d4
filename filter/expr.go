package filter

import (
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/hackcheck/hackcheck"
)

// sourceDateLayouts are the precisions a breach source date is reported in
var sourceDateLayouts = []string{"2006-01-02", "2006-01", "2006"}

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression  string
	program     *vm.Program
	customFuncs map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[CompiledFilter](size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.customFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		customFuncs: make(map[string]any),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type exprCompiler struct {
	customFuncs map[string]any
	cache       *lruCache[CompiledFilter]
}

// Compile compiles an expression into an executable filter.
// Expressions are type checked against a zero SearchResult, so unknown
// identifiers and non-boolean results are rejected here rather than at
// evaluation time.
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(newEnvironment(hackcheck.SearchResult{}, c.customFuncs)),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression:  expression,
		program:     program,
		customFuncs: c.customFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

// Evaluate runs the program against a single result. Runtime errors count
// as a non-match.
func (f *exprFilter) Evaluate(result hackcheck.SearchResult) bool {
	out, err := expr.Run(f.program, newEnvironment(result, f.customFuncs))
	if err != nil {
		return false
	}
	return out.(bool)
}

func (f *exprFilter) Expression() string {
	return f.expression
}

// newEnvironment builds the variables and helpers visible to an expression
func newEnvironment(result hackcheck.SearchResult, custom map[string]any) map[string]any {
	env := make(map[string]any, 32+len(custom))

	addHelperFunctions(env)

	breached, _ := parseSourceDate(result.Source.Date)

	env["Result"] = result
	env["Email"] = result.Email
	env["Password"] = result.Password
	env["Username"] = result.Username
	env["FullName"] = result.FullName
	env["IPAddress"] = result.IPAddress
	env["PhoneNumber"] = result.PhoneNumber
	env["Hash"] = result.Hash
	env["Source"] = result.Source
	env["SourceName"] = result.Source.Name
	env["SourceDate"] = result.Source.Date
	env["Breached"] = breached

	env["hasPassword"] = func() bool { return result.Password != "" }
	env["hasHash"] = func() bool { return result.Hash != "" }
	env["fromSource"] = func(name string) bool {
		return strings.EqualFold(result.Source.Name, name)
	}
	env["emailDomain"] = func() string {
		_, domain, ok := strings.Cut(result.Email, "@")
		if !ok {
			return ""
		}
		return strings.ToLower(domain)
	}
	env["breachedAfter"] = createBreachCompareFunc(breached, func(b, t time.Time) bool { return b.After(t) })
	env["breachedBefore"] = createBreachCompareFunc(breached, func(b, t time.Time) bool { return b.Before(t) })

	maps.Copy(env, custom)

	return env
}

func addHelperFunctions(env map[string]any) {
	// Date helpers
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	env["monthsAgo"] = func(months int) time.Time {
		return time.Now().AddDate(0, -months, 0)
	}
	env["yearsAgo"] = func(years int) time.Time {
		return time.Now().AddDate(-years, 0, 0)
	}
	env["parseDate"] = func(s string) time.Time {
		t, _ := parseSourceDate(s)
		return t
	}
	// Case-insensitive variants of the contains/startsWith/endsWith operators
	env["icontains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["istartsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["iendsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
}

// createBreachCompareFunc returns a helper that is false whenever either
// side has no usable date
func createBreachCompareFunc(breached time.Time, cmp func(breached, t time.Time) bool) func(string) bool {
	return func(date string) bool {
		if breached.IsZero() {
			return false
		}
		t, ok := parseSourceDate(date)
		if !ok {
			return false
		}
		return cmp(breached, t)
	}
}

// parseSourceDate accepts day, month or year precision and returns the
// start of that period in UTC
func parseSourceDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range sourceDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
