// Package filter narrows decoded Olho Vivo results with expr-lang expressions.
//
// The item under test is bound to the variable "item", so fields and methods of
// the result types are reachable directly:
//
//	item.SignPrefix == "8000" and hasText(item.SecondaryTerminal, "lapa")
//	item.Accessible and minutesSince(item.UpdatedAt) < 5
package filter

import (
	"maps"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// DefaultCacheSize is the number of compiled expressions kept by NewCompiler
const DefaultCacheSize = 64

// Compiler compiles filter expressions
type Compiler struct {
	helpers map[string]any
	cache   *lruCache[*Filter]
}

// CompilerOption configures a Compiler
type CompilerOption func(*Compiler)

// WithCache sets the number of compiled expressions to keep. Zero disables caching.
func WithCache(size int) CompilerOption {
	return func(c *Compiler) {
		if size > 0 {
			c.cache = newLRUCache[*Filter](size)
		} else {
			c.cache = nil
		}
	}
}

// WithFunctions adds helper functions available to every expression
func WithFunctions(funcs map[string]any) CompilerOption {
	return func(c *Compiler) {
		maps.Copy(c.helpers, funcs)
	}
}

// NewCompiler creates a compiler with the built-in helpers and a default cache
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{
		helpers: helperFunctions(),
		cache:   newLRUCache[*Filter](DefaultCacheSize),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Compile compiles an expression into a reusable filter
func (c *Compiler) Compile(expression string) (*Filter, error) {
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
		expr.Env(c.helpers),
		expr.AllowUndefinedVariables(), // item is bound at run time
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	f := &Filter{
		expression: expression,
		program:    program,
		helpers:    c.helpers,
	}

	if c.cache != nil {
		c.cache.Put(expression, f)
	}

	return f, nil
}

// Cached returns the number of compiled expressions in the cache
func (c *Compiler) Cached() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}

// Filter is a compiled expression. It is safe for concurrent use.
type Filter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// Match evaluates the filter with item bound to "item"
func (f *Filter) Match(item any) (bool, error) {
	env := make(map[string]any, len(f.helpers)+1)
	maps.Copy(env, f.helpers)
	env["item"] = item

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, err
	}

	// AsBool guarantees the type
	return result.(bool), nil
}

// Expression returns the source expression
func (f *Filter) Expression() string {
	return f.expression
}

// Apply returns the items the filter matches, in order. A nil filter matches everything.
func Apply[T any](f *Filter, items []T) ([]T, error) {
	if f == nil {
		return items, nil
	}

	matched := make([]T, 0, len(items))
	for i, item := range items {
		ok, err := f.Match(item)
		if err != nil {
			return nil, &EvaluationError{Expression: f.expression, Index: i, Err: err}
		}
		if ok {
			matched = append(matched, item)
		}
	}

	return matched, nil
}
