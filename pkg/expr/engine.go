// Package expr provides JavaScript expression evaluation for scenario
// files.
package expr

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dop251/goja"
)

// Engine wraps a goja runtime exposing scenario variables and the
// current platform to `${...}` expressions.
type Engine struct {
	runtime   *goja.Runtime
	variables map[string]interface{}
	mu        sync.Mutex
}

// New creates a new expression engine.
func New() *Engine {
	e := &Engine{
		runtime:   goja.New(),
		variables: make(map[string]interface{}),
	}
	e.runtime.Set("env", e.variables)
	return e
}

// SetVariable sets a variable visible to expressions both as a bare
// identifier and under the env object.
func (e *Engine) SetVariable(name string, value interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.variables[name] = value
	e.runtime.Set(name, value)
}

// SetVariables sets multiple variables.
func (e *Engine) SetVariables(vars map[string]string) {
	for k, v := range vars {
		e.SetVariable(k, v)
	}
}

// SetPlatform binds the `platform` identifier.
func (e *Engine) SetPlatform(platform string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.runtime.Set("platform", platform)
}

// Eval evaluates a JS expression and returns its value.
func (e *Engine) Eval(code string) (interface{}, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	value, err := e.runtime.RunString(code)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate %q: %w", code, err)
	}
	return value.Export(), nil
}

// EvalString evaluates a JS expression and stringifies the result.
func (e *Engine) EvalString(code string) (string, error) {
	value, err := e.Eval(code)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%v", value), nil
}

// EvalBool evaluates a JS expression as a condition.
func (e *Engine) EvalBool(code string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	value, err := e.runtime.RunString(code)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate %q: %w", code, err)
	}
	return value.ToBoolean(), nil
}

// Expand expands ${...} expressions in a string using JS evaluation.
// Expressions that fail to evaluate are left in place.
func (e *Engine) Expand(text string) string {
	result := text
	start := 0

	for {
		idx := strings.Index(result[start:], "${")
		if idx == -1 {
			break
		}
		idx += start

		// Find matching }
		depth := 1
		end := idx + 2
		for end < len(result) && depth > 0 {
			if result[end] == '{' {
				depth++
			} else if result[end] == '}' {
				depth--
			}
			end++
		}

		if depth != 0 {
			// Unmatched brace, skip
			start = idx + 2
			continue
		}

		value, err := e.EvalString(result[idx+2 : end-1])
		if err != nil {
			start = end
			continue
		}

		result = result[:idx] + value + result[end:]
		start = idx + len(value)
	}

	return result
}
