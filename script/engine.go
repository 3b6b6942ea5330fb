// Package script runs small user-supplied Lua chunks as activation
// handlers for matched spans. A chunk is compiled once and receives the
// matched text and attribute key as its varargs:
//
//	local text, key = ...
//	print("activated " .. key .. ": " .. text)
//
// gopher-lua's LState is not goroutine-safe; the engine serializes all
// calls through a mutex.
package script

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// ErrEngineClosed is returned when using a closed engine.
var ErrEngineClosed = errors.New("script engine is closed")

// ActivateFunc is a compiled activation handler. It receives the
// matched text and the attribute key that derived it.
type ActivateFunc func(text, key string) error

// Engine compiles and runs activation chunks on a single Lua state.
type Engine struct {
	mu     sync.Mutex
	state  *lua.LState
	closed bool
}

// NewEngine creates an engine with a fresh Lua state.
func NewEngine() *Engine {
	return &Engine{state: lua.NewState()}
}

// Compile loads a chunk and returns a callable handler. The chunk name
// appears in Lua error messages.
func (e *Engine) Compile(name, chunk string) (ActivateFunc, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, ErrEngineClosed
	}

	fn, err := e.state.LoadString(chunk)
	if err != nil {
		return nil, fmt.Errorf("compiling activation chunk %q: %w", name, err)
	}

	return func(text, key string) error {
		return e.call(name, fn, text, key)
	}, nil
}

func (e *Engine) call(name string, fn *lua.LFunction, text, key string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrEngineClosed
	}

	e.state.Push(fn)
	e.state.Push(lua.LString(text))
	e.state.Push(lua.LString(key))
	if err := e.state.PCall(2, 0, nil); err != nil {
		return fmt.Errorf("running activation chunk %q: %w", name, err)
	}
	return nil
}

// SetGlobal exposes a Go function to activation chunks under the given
// name.
func (e *Engine) SetGlobal(name string, fn func(args ...string) error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	e.state.SetGlobal(name, e.state.NewFunction(func(L *lua.LState) int {
		top := L.GetTop()
		args := make([]string, 0, top)
		for i := 1; i <= top; i++ {
			args = append(args, L.CheckString(i))
		}
		if err := fn(args...); err != nil {
			L.RaiseError("%s: %v", name, err)
		}
		return 0
	}))
}

// Close releases the Lua state. Compiled handlers fail with
// ErrEngineClosed afterwards. Close is idempotent.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.state.Close()
}
