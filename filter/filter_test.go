package filter

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/s0up4200/hackcheck/hackcheck"
)

var testResults = []hackcheck.SearchResult{
	{
		Email:    "neo@matrix.io",
		Password: "trinity",
		Username: "neo",
		Source:   hackcheck.Source{Name: "Zion", Date: "2019-04"},
	},
	{
		Email:  "smith@agents.gov",
		Hash:   "5f4dcc3b5aa765d61d8327deb882cf99",
		Source: hackcheck.Source{Name: "Machine City", Date: "2012"},
	},
	{
		Email:  "oracle@matrix.io",
		Source: hackcheck.Source{Name: "zion", Date: "unknown"},
	},
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{name: "valid helper call", expression: `hasPassword()`},
		{name: "field comparison", expression: `SourceName == "Zion" and Email != ""`},
		{name: "struct field access", expression: `Source.Date startsWith "2019"`},
		{name: "empty expression", expression: "  ", wantErr: true, errContains: "empty expression"},
		{name: "invalid syntax", expression: `fromSource("unclosed`, wantErr: true},
		{name: "unknown identifier", expression: `Movie.Title == "x"`, wantErr: true},
		{name: "non boolean result", expression: `Email`, wantErr: true},
	}

	compiler := NewExprCompiler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := compiler.Compile(tt.expression)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				var compErr *CompilationError
				if !errors.As(err, &compErr) {
					t.Errorf("expected *CompilationError, got %T", err)
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if filter.Expression() != strings.TrimSpace(tt.expression) {
				t.Errorf("Expression() = %q", filter.Expression())
			}
		})
	}
}

func TestFilterEvaluation(t *testing.T) {
	tests := []struct {
		expression string
		expected   []bool
	}{
		{`hasPassword()`, []bool{true, false, false}},
		{`hasHash()`, []bool{false, true, false}},
		{`fromSource("zion")`, []bool{true, false, true}},
		{`emailDomain() == "matrix.io"`, []bool{true, false, true}},
		{`breachedAfter("2015")`, []bool{true, false, false}},
		{`breachedBefore("2019-04-02")`, []bool{true, true, false}},
		{`icontains(Email, "AGENTS")`, []bool{false, true, false}},
		{`Breached.Year() == 2012`, []bool{false, true, false}},
		{`Username == "neo" or Hash != ""`, []bool{true, true, false}},
	}

	compiler := NewExprCompiler()
	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			filter, err := compiler.Compile(tt.expression)
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			for i, result := range testResults {
				if got := filter.Evaluate(result); got != tt.expected[i] {
					t.Errorf("result %d (%s): got %v, want %v", i, result.Email, got, tt.expected[i])
				}
			}
		})
	}
}

func TestCustomFunctions(t *testing.T) {
	compiler := NewExprCompiler(WithCustomFunctions(map[string]any{
		"isCorporate": func(email string) bool { return strings.HasSuffix(email, ".gov") },
	}))

	filter, err := compiler.Compile(`isCorporate(Email)`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !filter.Evaluate(testResults[1]) || filter.Evaluate(testResults[0]) {
		t.Error("custom function was not applied")
	}
}

func TestApply(t *testing.T) {
	filter, err := NewExprCompiler().Compile(`fromSource("Zion")`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	matches, err := Apply(context.Background(), filter, testResults)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 || matches[0].Email != "neo@matrix.io" || matches[1].Email != "oracle@matrix.io" {
		t.Errorf("unexpected matches: %+v", matches)
	}

	all, err := Apply(context.Background(), nil, testResults)
	if err != nil || len(all) != len(testResults) {
		t.Errorf("nil filter should keep all results, got %d (%v)", len(all), err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Apply(ctx, filter, testResults); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestApplyResponse(t *testing.T) {
	filter, err := NewExprCompiler().Compile(`hasPassword()`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	resp := &hackcheck.SearchResponse{Results: append([]hackcheck.SearchResult(nil), testResults...)}
	removed, err := ApplyResponse(context.Background(), filter, resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 2 || len(resp.Results) != 1 {
		t.Errorf("removed = %d, remaining = %d", removed, len(resp.Results))
	}
}

func TestFilterManager(t *testing.T) {
	manager := NewManager()

	err := manager.RegisterFilters(map[string]string{
		"plaintext": `hasPassword()`,
		"zion":      `fromSource("zion")`,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := manager.RegisterFilters(map[string]string{"broken": `(`}); err == nil {
		t.Error("expected error for invalid preset")
	}
	if _, ok := manager.GetFilter("broken"); ok {
		t.Error("invalid preset should not be registered")
	}

	names := manager.ListFilters()
	if len(names) != 2 || names[0] != "plaintext" || names[1] != "zion" {
		t.Errorf("ListFilters() = %v", names)
	}

	matches, err := manager.EvaluateFilter(context.Background(), "zion", testResults)
	if err != nil || len(matches) != 2 {
		t.Errorf("EvaluateFilter: %d matches, err %v", len(matches), err)
	}

	var notFound *PresetNotFoundError
	if _, err := manager.EvaluateFilter(context.Background(), "missing", testResults); !errors.As(err, &notFound) {
		t.Errorf("expected PresetNotFoundError, got %v", err)
	}
}

func TestManagerResolve(t *testing.T) {
	manager := NewManager()
	if err := manager.RegisterFilter("zion", `fromSource("zion")`); err != nil {
		t.Fatalf("register: %v", err)
	}

	none, err := manager.Resolve(nil, "")
	if err != nil || none != nil {
		t.Errorf("expected nil filter, got %v (%v)", none, err)
	}

	combined, err := manager.Resolve([]string{"zion"}, `hasPassword()`)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	matches, _ := Apply(context.Background(), combined, testResults)
	if len(matches) != 1 || matches[0].Username != "neo" {
		t.Errorf("unexpected matches: %+v", matches)
	}

	if _, err := manager.Resolve([]string{"nope"}, ""); err == nil {
		t.Error("expected error for unknown preset")
	}
	if _, err := manager.Resolve(nil, `)`); err == nil {
		t.Error("expected error for invalid expression")
	}
}

func TestManagerWithCompiler(t *testing.T) {
	compiler := NewExprCompiler(WithCustomFunctions(map[string]any{
		"isAgent": func(email string) bool { return strings.HasSuffix(email, "@agents.gov") },
	}))
	manager := NewManager(WithCompiler(compiler))

	if err := manager.RegisterFilter("agents", `isAgent(Email)`); err != nil {
		t.Fatalf("register with custom compiler: %v", err)
	}
	if compiler.Size() != 0 {
		t.Errorf("uncached compiler should not retain filters, size = %d", compiler.Size())
	}

	matches, err := manager.EvaluateFilter(context.Background(), "agents", testResults)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(matches) != 1 || matches[0].Email != "smith@agents.gov" {
		t.Errorf("unexpected matches: %+v", matches)
	}

	if err := NewManager().RegisterFilter("agents", `isAgent(Email)`); err == nil {
		t.Error("default compiler should not know custom functions")
	}
}

func TestCacheEffectiveness(t *testing.T) {
	compiler := NewExprCompiler(WithCache(2))

	first, err := compiler.Compile(`hasPassword()`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	second, _ := compiler.Compile(`hasPassword()`)
	if first != second {
		t.Error("expected cached filter instance")
	}

	compiler.Compile(`hasHash()`)
	compiler.Compile(`fromSource("x")`)
	if compiler.Size() != 2 {
		t.Errorf("cache size = %d, want 2", compiler.Size())
	}

	compiler.Clear()
	if compiler.Size() != 0 {
		t.Errorf("cache size after clear = %d", compiler.Size())
	}
}

func TestLRUEviction(t *testing.T) {
	cache := newLRUCache[int](2)
	cache.Put("a", 1)
	cache.Put("b", 2)
	cache.Get("a")
	cache.Put("c", 3)

	if _, ok := cache.Get("b"); ok {
		t.Error("least recently used entry should be evicted")
	}
	if v, ok := cache.Get("a"); !ok || v != 1 {
		t.Errorf("a = %v, %v", v, ok)
	}
}
