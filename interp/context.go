package interp

// ---------------------------------------------------------------------------
// Context: the lexical scope chain
// ---------------------------------------------------------------------------

// Context is one frame of the scope chain. Frames are created on entering
// a block, loop body, match clause, or function call, and discarded on
// exit. A frame created for a function call is tagged with that function
// so return statements can check their legality.
type Context struct {
	parent *Context
	values map[string]Value
	fn     *Function // non-nil on function-call frames
}

// NewContext creates a frame enclosed by parent (nil for the root).
func NewContext(parent *Context) *Context {
	return &Context{parent: parent, values: make(map[string]Value)}
}

// NewFunctionContext creates a call frame tagged with the function being
// invoked.
func NewFunctionContext(parent *Context, fn *Function) *Context {
	return &Context{parent: parent, values: make(map[string]Value), fn: fn}
}

// Resolve walks outward through enclosing frames and returns the first
// binding for name. The ok flag doubles as the non-throwing resolveSafe
// used by compound assignment; the evaluator turns a miss into a
// RuntimeError carrying the source position.
func (c *Context) Resolve(name string) (Value, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if value, ok := ctx.values[name]; ok {
			return value, true
		}
	}
	return Nil, false
}

// Define installs a binding into this innermost frame, shadowing any
// outer binding of the same name.
func (c *Context) Define(name string, value Value) {
	c.values[name] = value
}

// Assign walks outward and mutates the first frame that already defines
// name. It never creates new bindings; the result reports whether a
// binding was found.
func (c *Context) Assign(name string, value Value) bool {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if _, ok := ctx.values[name]; ok {
			ctx.values[name] = value
			return true
		}
	}
	return false
}

// EnclosingFunction walks outward to the nearest frame tagged with a
// function. Nil means execution is outside any function's dynamic extent.
func (c *Context) EnclosingFunction() *Function {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if ctx.fn != nil {
			return ctx.fn
		}
	}
	return nil
}
