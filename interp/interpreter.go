package interp

import (
	"bufio"
	"io"
	"os"
	"sort"

	"github.com/fen-lang/fen/compiler"
)

// ---------------------------------------------------------------------------
// Interp: tree-walking evaluator
// ---------------------------------------------------------------------------

// Interp evaluates parsed programs against a root context pre-seeded with
// the builtins. Evaluation is single-threaded and purely synchronous.
type Interp struct {
	globals *Context
	out     io.Writer
	in      *bufio.Reader
}

// New creates an interpreter with builtins registered into its root scope.
// I/O defaults to the process streams; see SetOutput and SetInput.
func New() *Interp {
	in := &Interp{
		globals: NewContext(nil),
		out:     os.Stdout,
		in:      bufio.NewReader(os.Stdin),
	}
	registerBuiltins(in.globals)
	return in
}

// SetOutput redirects the print builtin.
func (in *Interp) SetOutput(w io.Writer) { in.out = w }

// SetInput redirects the readLine builtin.
func (in *Interp) SetInput(r io.Reader) { in.in = bufio.NewReader(r) }

// Globals returns the root context.
func (in *Interp) Globals() *Context { return in.globals }

// Run scans, parses, and evaluates one source unit. Definitions persist
// in the root context across units, so a REPL can call Run repeatedly.
func (in *Interp) Run(src string) (Value, error) {
	prog, err := compiler.Parse(src)
	if err != nil {
		return Nil, err
	}
	return in.Eval(prog)
}

// Eval evaluates a parsed program, producing its final value.
func (in *Interp) Eval(prog *compiler.Program) (Value, error) {
	value, sig, err := in.execStatements(prog.Statements, in.globals)
	if err != nil {
		return Nil, err
	}
	switch sig.kind {
	case sigBreak:
		return Nil, runtimeErrorf(sig.pos, "break outside of loop")
	case sigReturn:
		return Nil, runtimeErrorf(sig.pos, "return outside of function")
	}
	return value, nil
}

// ---------------------------------------------------------------------------
// Control signals
// ---------------------------------------------------------------------------

type sigKind int

const (
	sigNone sigKind = iota
	sigBreak
	sigReturn
)

// signal is the explicit control result threaded through every statement
// and expression evaluation: break and return unwind to their nearest
// legal boundary without relying on panics. For sigReturn the return
// value travels in the ordinary Value slot.
type signal struct {
	kind sigKind
	pos  compiler.Position
}

var noSignal = signal{}

// ---------------------------------------------------------------------------
// Statement execution
// ---------------------------------------------------------------------------

// execStatements runs a statement sequence in ctx, tracking the last
// produced value: an unterminated sequence yields the value of its final
// semicolon-omitted expression statement, or nil.
func (in *Interp) execStatements(stmts []compiler.Stmt, ctx *Context) (Value, signal, error) {
	result := Nil
	for _, s := range stmts {
		value, sig, err := in.execStmt(s, ctx)
		if err != nil {
			return Nil, noSignal, err
		}
		if sig.kind != sigNone {
			return value, sig, nil
		}
		if es, ok := s.(*compiler.ExprStmt); ok && es.Emit {
			result = value
		}
	}
	return result, noSignal, nil
}

// execBlock runs a block in a fresh frame enclosed by ctx.
func (in *Interp) execBlock(b *compiler.Block, ctx *Context) (Value, signal, error) {
	return in.execStatements(b.Statements, NewContext(ctx))
}

func (in *Interp) execStmt(s compiler.Stmt, ctx *Context) (Value, signal, error) {
	switch st := s.(type) {
	case *compiler.ExprStmt:
		return in.evalExpr(st.Expr, ctx)

	case *compiler.LetStmt:
		value := Nil
		if st.Init != nil {
			var sig signal
			var err error
			value, sig, err = in.evalExpr(st.Init, ctx)
			if err != nil || sig.kind != sigNone {
				return value, sig, err
			}
		}
		ctx.Define(st.Name, value)
		return Nil, noSignal, nil

	case *compiler.FunStmt:
		ctx.Define(st.Fun.Name, FunctionValue(NewFunction(st.Fun)))
		return Nil, noSignal, nil

	case *compiler.WhileStmt:
		return in.execWhile(st, ctx)

	case *compiler.ForStmt:
		return in.execFor(st, ctx)

	case *compiler.BreakStmt:
		return Nil, signal{kind: sigBreak, pos: st.PosVal}, nil

	case *compiler.ReturnStmt:
		if ctx.EnclosingFunction() == nil {
			return Nil, noSignal, runtimeErrorf(st.PosVal, "return outside of function")
		}
		value := Nil
		if st.Value != nil {
			var sig signal
			var err error
			value, sig, err = in.evalExpr(st.Value, ctx)
			if err != nil || sig.kind != sigNone {
				return value, sig, err
			}
		}
		return value, signal{kind: sigReturn, pos: st.PosVal}, nil
	}

	return Nil, noSignal, runtimeErrorf(s.Pos(), "unknown statement")
}

// execWhile re-evaluates the condition each iteration. Break ends the
// loop here; the loop itself always yields nil.
func (in *Interp) execWhile(st *compiler.WhileStmt, ctx *Context) (Value, signal, error) {
	for {
		cond, sig, err := in.evalExpr(st.Condition, ctx)
		if err != nil || sig.kind != sigNone {
			return Nil, sig, err
		}
		if !cond.Truthy() {
			return Nil, noSignal, nil
		}

		value, sig, err := in.execBlock(st.Body, ctx)
		if err != nil {
			return Nil, noSignal, err
		}
		switch sig.kind {
		case sigBreak:
			return Nil, noSignal, nil
		case sigReturn:
			return value, sig, nil
		}
	}
}

// execFor evaluates the iterable once and dispatches on its runtime kind.
func (in *Interp) execFor(st *compiler.ForStmt, ctx *Context) (Value, signal, error) {
	iterable, sig, err := in.evalExpr(st.Iterable, ctx)
	if err != nil || sig.kind != sigNone {
		return Nil, sig, err
	}

	switch iterable.Kind() {
	case KindRange:
		return in.forOverRange(st, iterable, ctx)
	case KindList:
		return in.forOverList(st, iterable, ctx)
	case KindDict:
		return in.forOverDict(st, iterable, ctx)
	}
	return Nil, noSignal, runtimeErrorf(st.PosVal, "cannot iterate %s", iterable.Kind())
}

// runIteration binds names into a fresh loop-body frame and runs the body
// statements there. The caught flag is true when the body issued a break.
func (in *Interp) runIteration(st *compiler.ForStmt, bindings []Value, ctx *Context) (Value, signal, bool, error) {
	frame := NewContext(ctx)
	for i, name := range st.Names {
		frame.Define(name, bindings[i])
	}
	value, sig, err := in.execStatements(st.Body.Statements, frame)
	if err != nil {
		return Nil, noSignal, false, err
	}
	switch sig.kind {
	case sigBreak:
		return Nil, noSignal, true, nil
	case sigReturn:
		return value, sig, false, nil
	}
	return Nil, noSignal, false, nil
}

func (in *Interp) forOverRange(st *compiler.ForStmt, iterable Value, ctx *Context) (Value, signal, error) {
	if len(st.Names) != 1 {
		return Nil, noSignal, runtimeErrorf(st.PosVal, "range iteration takes one binding, got %d", len(st.Names))
	}
	rng, _ := iterable.Range()
	start, end := rng.Start, rng.End
	if start != float64(int64(start)) || end != float64(int64(end)) {
		return Nil, noSignal, runtimeErrorf(st.PosVal, "range bounds must be integral")
	}

	for i := int64(start); i < int64(end); i++ {
		value, sig, broke, err := in.runIteration(st, []Value{NumberValue(float64(i))}, ctx)
		if err != nil {
			return Nil, noSignal, err
		}
		if broke {
			return Nil, noSignal, nil
		}
		if sig.kind != sigNone {
			return value, sig, nil
		}
	}
	return Nil, noSignal, nil
}

func (in *Interp) forOverList(st *compiler.ForStmt, iterable Value, ctx *Context) (Value, signal, error) {
	list, _ := iterable.List()

	for _, elem := range list.Items {
		var bindings []Value
		if len(st.Names) == 1 {
			bindings = []Value{elem}
		} else {
			inner, err := elem.List()
			if err != nil {
				return Nil, noSignal, runtimeErrorf(st.PosVal, "cannot destructure %s into %d names", elem.Kind(), len(st.Names))
			}
			if len(inner.Items) != len(st.Names) {
				return Nil, noSignal, runtimeErrorf(st.PosVal, "cannot destructure %d elements into %d names", len(inner.Items), len(st.Names))
			}
			bindings = inner.Items
		}

		value, sig, broke, err := in.runIteration(st, bindings, ctx)
		if err != nil {
			return Nil, noSignal, err
		}
		if broke {
			return Nil, noSignal, nil
		}
		if sig.kind != sigNone {
			return value, sig, nil
		}
	}
	return Nil, noSignal, nil
}

func (in *Interp) forOverDict(st *compiler.ForStmt, iterable Value, ctx *Context) (Value, signal, error) {
	if len(st.Names) != 2 {
		return Nil, noSignal, runtimeErrorf(st.PosVal, "dict iteration takes two bindings, got %d", len(st.Names))
	}
	dict, _ := iterable.Dict()

	// Insertion order is not significant; sorted keys keep runs stable.
	keys := make([]string, 0, len(dict.Entries))
	for key := range dict.Entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value, sig, broke, err := in.runIteration(st, []Value{StringValue(key), dict.Entries[key]}, ctx)
		if err != nil {
			return Nil, noSignal, err
		}
		if broke {
			return Nil, noSignal, nil
		}
		if sig.kind != sigNone {
			return value, sig, nil
		}
	}
	return Nil, noSignal, nil
}

// ---------------------------------------------------------------------------
// Expression evaluation
// ---------------------------------------------------------------------------

func (in *Interp) evalExpr(e compiler.Expr, ctx *Context) (Value, signal, error) {
	switch ex := e.(type) {
	case *compiler.NumberLiteral:
		return NumberValue(ex.Value), noSignal, nil
	case *compiler.StringLiteral:
		return StringValue(ex.Value), noSignal, nil
	case *compiler.AtomLiteral:
		return AtomValue(ex.Name), noSignal, nil
	case *compiler.BoolLiteral:
		return BoolValue(ex.Value), noSignal, nil
	case *compiler.NilLiteral:
		return Nil, noSignal, nil

	case *compiler.Variable:
		value, ok := ctx.Resolve(ex.Name)
		if !ok {
			return Nil, noSignal, notFoundError(ex.PosVal, ex.Name)
		}
		return value, noSignal, nil

	case *compiler.Grouping:
		return in.evalExpr(ex.Expr, ctx)

	case *compiler.ListLiteral:
		return in.evalElements(ex.Elements, ctx)

	case *compiler.TupleLiteral:
		return in.evalElements(ex.Elements, ctx)

	case *compiler.DictLiteral:
		dict := NewDict()
		entries, _ := dict.Dict()
		for _, entry := range ex.Entries {
			value, sig, err := in.evalExpr(entry.Value, ctx)
			if err != nil || sig.kind != sigNone {
				return value, sig, err
			}
			entries.Entries[entry.Key] = value
		}
		return dict, noSignal, nil

	case *compiler.RangeLiteral:
		return in.evalRange(ex, ctx)

	case *compiler.Unary:
		return in.evalUnary(ex, ctx)

	case *compiler.Binary:
		return in.evalBinary(ex, ctx)

	case *compiler.Logical:
		return in.evalLogical(ex, ctx)

	case *compiler.Assignment:
		return in.evalAssignment(ex, ctx)

	case *compiler.Call:
		return in.evalCall(ex, ctx)

	case *compiler.Member:
		object, sig, err := in.evalExpr(ex.Object, ctx)
		if err != nil || sig.kind != sigNone {
			return object, sig, err
		}
		value, err := in.memberGet(ex.PosVal, object, ex.Name)
		return value, noSignal, err

	case *compiler.Index:
		object, sig, err := in.evalExpr(ex.Object, ctx)
		if err != nil || sig.kind != sigNone {
			return object, sig, err
		}
		key, sig, err := in.evalExpr(ex.Key, ctx)
		if err != nil || sig.kind != sigNone {
			return key, sig, err
		}
		value, err := in.indexGet(ex.PosVal, object, key)
		return value, noSignal, err

	case *compiler.Block:
		return in.execBlock(ex, ctx)

	case *compiler.If:
		return in.evalIf(ex, ctx)

	case *compiler.Match:
		return in.evalMatch(ex, ctx)

	case *compiler.FunLiteral:
		return FunctionValue(NewFunction(ex)), noSignal, nil
	}

	return Nil, noSignal, runtimeErrorf(e.Pos(), "unknown expression")
}

func (in *Interp) evalElements(elements []compiler.Expr, ctx *Context) (Value, signal, error) {
	items := make([]Value, 0, len(elements))
	for _, elem := range elements {
		value, sig, err := in.evalExpr(elem, ctx)
		if err != nil || sig.kind != sigNone {
			return value, sig, err
		}
		items = append(items, value)
	}
	return NewList(items...), noSignal, nil
}

func (in *Interp) evalRange(ex *compiler.RangeLiteral, ctx *Context) (Value, signal, error) {
	start, sig, err := in.evalExpr(ex.Start, ctx)
	if err != nil || sig.kind != sigNone {
		return start, sig, err
	}
	end, sig, err := in.evalExpr(ex.End, ctx)
	if err != nil || sig.kind != sigNone {
		return end, sig, err
	}

	lo, err := start.Number()
	if err != nil {
		return Nil, noSignal, runtimeErrorf(ex.PosVal, "range bounds must be numbers")
	}
	hi, err := end.Number()
	if err != nil {
		return Nil, noSignal, runtimeErrorf(ex.PosVal, "range bounds must be numbers")
	}
	return RangeValue(lo, hi), noSignal, nil
}

func (in *Interp) evalUnary(ex *compiler.Unary, ctx *Context) (Value, signal, error) {
	operand, sig, err := in.evalExpr(ex.Operand, ctx)
	if err != nil || sig.kind != sigNone {
		return operand, sig, err
	}

	switch ex.Op {
	case compiler.TokenBang:
		return BoolValue(!operand.Truthy()), noSignal, nil
	case compiler.TokenMinus:
		n, err := operand.Number()
		if err != nil {
			return Nil, noSignal, runtimeErrorf(ex.PosVal, "operand of - must be a number, got %s", operand.Kind())
		}
		return NumberValue(-n), noSignal, nil
	}
	return Nil, noSignal, runtimeErrorf(ex.PosVal, "unknown unary operator %s", ex.Op)
}

func (in *Interp) evalBinary(ex *compiler.Binary, ctx *Context) (Value, signal, error) {
	left, sig, err := in.evalExpr(ex.Left, ctx)
	if err != nil || sig.kind != sigNone {
		return left, sig, err
	}
	right, sig, err := in.evalExpr(ex.Right, ctx)
	if err != nil || sig.kind != sigNone {
		return right, sig, err
	}

	value, err := applyBinary(ex.PosVal, ex.Op, left, right)
	return value, noSignal, err
}

// applyBinary applies one non-logical binary operator. Equality applies
// to any two values; + concatenates two strings; every other operator
// requires numeric operands.
func applyBinary(pos compiler.Position, op compiler.TokenType, left, right Value) (Value, error) {
	switch op {
	case compiler.TokenEqualEqual:
		return BoolValue(left.Equal(right)), nil
	case compiler.TokenBangEqual:
		return BoolValue(!left.Equal(right)), nil
	}

	if op == compiler.TokenPlus && left.Kind() == KindString && right.Kind() == KindString {
		ls, _ := left.Str()
		rs, _ := right.Str()
		return StringValue(ls + rs), nil
	}

	ln, err := left.Number()
	if err != nil {
		return Nil, runtimeErrorf(pos, "operands of %s must be numbers, got %s", op, left.Kind())
	}
	rn, err := right.Number()
	if err != nil {
		return Nil, runtimeErrorf(pos, "operands of %s must be numbers, got %s", op, right.Kind())
	}

	switch op {
	case compiler.TokenPlus:
		return NumberValue(ln + rn), nil
	case compiler.TokenMinus:
		return NumberValue(ln - rn), nil
	case compiler.TokenStar:
		return NumberValue(ln * rn), nil
	case compiler.TokenSlash:
		return NumberValue(ln / rn), nil
	case compiler.TokenLess:
		return BoolValue(ln < rn), nil
	case compiler.TokenLessEqual:
		return BoolValue(ln <= rn), nil
	case compiler.TokenGreater:
		return BoolValue(ln > rn), nil
	case compiler.TokenGreaterEqual:
		return BoolValue(ln >= rn), nil
	}
	return Nil, runtimeErrorf(pos, "unknown operator %s", op)
}

// evalLogical short-circuits: the right operand is evaluated only when
// necessary, and the producing operand is the expression's value.
func (in *Interp) evalLogical(ex *compiler.Logical, ctx *Context) (Value, signal, error) {
	left, sig, err := in.evalExpr(ex.Left, ctx)
	if err != nil || sig.kind != sigNone {
		return left, sig, err
	}

	if ex.Op == compiler.TokenOr {
		if left.Truthy() {
			return left, noSignal, nil
		}
	} else {
		if !left.Truthy() {
			return left, noSignal, nil
		}
	}
	return in.evalExpr(ex.Right, ctx)
}

func (in *Interp) evalIf(ex *compiler.If, ctx *Context) (Value, signal, error) {
	cond, sig, err := in.evalExpr(ex.Condition, ctx)
	if err != nil || sig.kind != sigNone {
		return cond, sig, err
	}

	if cond.Truthy() {
		return in.execBlock(ex.Then, ctx)
	}
	if ex.Else != nil {
		return in.evalExpr(ex.Else, ctx)
	}
	return Nil, noSignal, nil
}

// evalMatch tries clauses strictly in order; the first structural match
// wins, its captures bound into a fresh clause frame. An exhausted match
// yields nil.
func (in *Interp) evalMatch(ex *compiler.Match, ctx *Context) (Value, signal, error) {
	target, sig, err := in.evalExpr(ex.Target, ctx)
	if err != nil || sig.kind != sigNone {
		return target, sig, err
	}

	for _, clause := range ex.Clauses {
		captures := make(map[string]Value)
		if !matchPattern(clause.Pattern, target, captures) {
			continue
		}
		frame := NewContext(ctx)
		for name, value := range captures {
			frame.Define(name, value)
		}
		return in.evalExpr(clause.Body, frame)
	}
	return Nil, noSignal, nil
}

// matchPattern matches v against pat, accumulating captures. Matching is
// backtracking-free: any failing element aborts the enclosing pattern.
func matchPattern(pat compiler.Pattern, v Value, captures map[string]Value) bool {
	switch p := pat.(type) {
	case *compiler.LiteralPattern:
		return literalValue(p.Value).Equal(v)

	case *compiler.CapturePattern:
		if p.Name != "_" {
			captures[p.Name] = v
		}
		return true

	case *compiler.ListPattern:
		list, err := v.List()
		if err != nil || len(list.Items) != len(p.Elements) {
			return false
		}
		for i, sub := range p.Elements {
			if !matchPattern(sub, list.Items[i], captures) {
				return false
			}
		}
		return true

	case *compiler.DictPattern:
		dict, err := v.Dict()
		if err != nil {
			return false
		}
		for _, entry := range p.Entries {
			value, ok := dict.Entries[entry.Key]
			if !ok {
				return false
			}
			if entry.Pattern == nil {
				captures[entry.Key] = value
				continue
			}
			if !matchPattern(entry.Pattern, value, captures) {
				return false
			}
		}
		return true
	}
	return false
}

// literalValue evaluates a pattern's literal expression, which needs no
// context.
func literalValue(e compiler.Expr) Value {
	switch ex := e.(type) {
	case *compiler.NumberLiteral:
		return NumberValue(ex.Value)
	case *compiler.StringLiteral:
		return StringValue(ex.Value)
	case *compiler.AtomLiteral:
		return AtomValue(ex.Name)
	case *compiler.BoolLiteral:
		return BoolValue(ex.Value)
	case *compiler.NilLiteral:
		return Nil
	}
	return Nil
}

// ---------------------------------------------------------------------------
// Calls
// ---------------------------------------------------------------------------

func (in *Interp) evalCall(ex *compiler.Call, ctx *Context) (Value, signal, error) {
	callee, sig, err := in.evalExpr(ex.Callee, ctx)
	if err != nil || sig.kind != sigNone {
		return callee, sig, err
	}

	fn, err := callee.Callable()
	if err != nil {
		return Nil, noSignal, runtimeErrorf(ex.PosVal, "cannot call %s", callee.Kind())
	}

	args := make([]Value, 0, len(ex.Arguments))
	for _, arg := range ex.Arguments {
		value, sig, err := in.evalExpr(arg, ctx)
		if err != nil || sig.kind != sigNone {
			return value, sig, err
		}
		args = append(args, value)
	}

	if len(args) != fn.Arity() {
		return Nil, noSignal, runtimeErrorf(ex.PosVal, "%s expects %d arguments, got %d", fn.Name(), fn.Arity(), len(args))
	}

	value, err := fn.Call(in, ctx, args)
	return value, noSignal, err
}

// ---------------------------------------------------------------------------
// Member access and indexing
// ---------------------------------------------------------------------------

// memberGet dispatches member access on the runtime kind of the object.
// Dict members resolve to entries, currying callables into bound methods;
// a missing dict entry is nil.
func (in *Interp) memberGet(pos compiler.Position, object Value, name string) (Value, error) {
	switch object.Kind() {
	case KindString:
		s, _ := object.Str()
		if name == "count" {
			return NumberValue(float64(len([]rune(s)))), nil
		}

	case KindList:
		list, _ := object.List()
		if name == "count" {
			return NumberValue(float64(len(list.Items))), nil
		}

	case KindDict:
		dict, _ := object.Dict()
		if name == "count" {
			return NumberValue(float64(len(dict.Entries))), nil
		}
		value, ok := dict.Entries[name]
		if !ok {
			return Nil, nil
		}
		if fn, err := value.Callable(); err == nil {
			return FunctionValue(NewBoundMethod(object, fn)), nil
		}
		return value, nil
	}

	return Nil, runtimeErrorf(pos, "%s has no member %q", object.Kind(), name)
}

// memberSet writes a dict entry through member syntax.
func (in *Interp) memberSet(pos compiler.Position, object Value, name string, value Value) error {
	dict, err := object.Dict()
	if err != nil {
		return runtimeErrorf(pos, "cannot assign member %q on %s", name, object.Kind())
	}
	dict.Entries[name] = value
	return nil
}

// indexKey extracts a dict key from an index expression's key value.
func indexKey(key Value) (string, bool) {
	switch key.Kind() {
	case KindString:
		s, _ := key.Str()
		return s, true
	case KindAtom:
		s, _ := key.Atom()
		return s, true
	}
	return "", false
}

// intIndex extracts an integral index.
func intIndex(key Value) (int, bool) {
	if !key.IsIntegral() {
		return 0, false
	}
	n, _ := key.Number()
	return int(n), true
}

func (in *Interp) indexGet(pos compiler.Position, object, key Value) (Value, error) {
	switch object.Kind() {
	case KindString:
		s, _ := object.Str()
		i, ok := intIndex(key)
		if !ok {
			return Nil, runtimeErrorf(pos, "string index must be an integral number, got %s", key.Kind())
		}
		runes := []rune(s)
		if i < 0 || i >= len(runes) {
			return Nil, runtimeErrorf(pos, "string index %d out of range", i)
		}
		return StringValue(string(runes[i])), nil

	case KindList:
		list, _ := object.List()
		i, ok := intIndex(key)
		if !ok {
			return Nil, runtimeErrorf(pos, "list index must be an integral number, got %s", key.Kind())
		}
		if i < 0 || i >= len(list.Items) {
			return Nil, runtimeErrorf(pos, "list index %d out of range", i)
		}
		return list.Items[i], nil

	case KindDict:
		dict, _ := object.Dict()
		name, ok := indexKey(key)
		if !ok {
			return Nil, runtimeErrorf(pos, "dict key must be a string or atom, got %s", key.Kind())
		}
		if value, found := dict.Entries[name]; found {
			return value, nil
		}
		return Nil, nil
	}

	return Nil, runtimeErrorf(pos, "cannot index %s", object.Kind())
}

func (in *Interp) indexSet(pos compiler.Position, object, key, value Value) error {
	switch object.Kind() {
	case KindList:
		list, _ := object.List()
		i, ok := intIndex(key)
		if !ok {
			return runtimeErrorf(pos, "list index must be an integral number, got %s", key.Kind())
		}
		if i < 0 || i >= len(list.Items) {
			return runtimeErrorf(pos, "list index %d out of range", i)
		}
		list.Items[i] = value
		return nil

	case KindDict:
		dict, _ := object.Dict()
		name, ok := indexKey(key)
		if !ok {
			return runtimeErrorf(pos, "dict key must be a string or atom, got %s", key.Kind())
		}
		dict.Entries[name] = value
		return nil
	}

	return runtimeErrorf(pos, "cannot assign by index into %s", object.Kind())
}

// ---------------------------------------------------------------------------
// Assignment
// ---------------------------------------------------------------------------

// evalAssignment handles plain and compound assignment to variables,
// members, and index expressions. Compound forms desugar here: read the
// current value, combine, store.
func (in *Interp) evalAssignment(ex *compiler.Assignment, ctx *Context) (Value, signal, error) {
	switch target := ex.Target.(type) {
	case *compiler.Variable:
		return in.assignVariable(ex, target, ctx)
	case *compiler.Member:
		return in.assignMember(ex, target, ctx)
	case *compiler.Index:
		return in.assignIndex(ex, target, ctx)
	}
	return Nil, noSignal, runtimeErrorf(ex.PosVal, "illegal assignment target")
}

// compoundOp maps a compound assignment token to its arithmetic operator.
var compoundOp = map[compiler.TokenType]compiler.TokenType{
	compiler.TokenPlusEqual:  compiler.TokenPlus,
	compiler.TokenMinusEqual: compiler.TokenMinus,
	compiler.TokenStarEqual:  compiler.TokenStar,
	compiler.TokenSlashEqual: compiler.TokenSlash,
}

func (in *Interp) assignVariable(ex *compiler.Assignment, target *compiler.Variable, ctx *Context) (Value, signal, error) {
	value, sig, err := in.evalExpr(ex.Value, ctx)
	if err != nil || sig.kind != sigNone {
		return value, sig, err
	}

	if op, compound := compoundOp[ex.Op]; compound {
		current, ok := ctx.Resolve(target.Name)
		if !ok {
			return Nil, noSignal, notFoundError(target.PosVal, target.Name)
		}
		value, err = applyBinary(ex.PosVal, op, current, value)
		if err != nil {
			return Nil, noSignal, err
		}
	}

	if !ctx.Assign(target.Name, value) {
		return Nil, noSignal, notFoundError(target.PosVal, target.Name)
	}
	return value, noSignal, nil
}

func (in *Interp) assignMember(ex *compiler.Assignment, target *compiler.Member, ctx *Context) (Value, signal, error) {
	object, sig, err := in.evalExpr(target.Object, ctx)
	if err != nil || sig.kind != sigNone {
		return object, sig, err
	}
	value, sig, err := in.evalExpr(ex.Value, ctx)
	if err != nil || sig.kind != sigNone {
		return value, sig, err
	}

	if op, compound := compoundOp[ex.Op]; compound {
		current, err := in.memberGet(target.PosVal, object, target.Name)
		if err != nil {
			return Nil, noSignal, err
		}
		value, err = applyBinary(ex.PosVal, op, current, value)
		if err != nil {
			return Nil, noSignal, err
		}
	}

	if err := in.memberSet(target.PosVal, object, target.Name, value); err != nil {
		return Nil, noSignal, err
	}
	return value, noSignal, nil
}

func (in *Interp) assignIndex(ex *compiler.Assignment, target *compiler.Index, ctx *Context) (Value, signal, error) {
	object, sig, err := in.evalExpr(target.Object, ctx)
	if err != nil || sig.kind != sigNone {
		return object, sig, err
	}
	key, sig, err := in.evalExpr(target.Key, ctx)
	if err != nil || sig.kind != sigNone {
		return key, sig, err
	}
	value, sig, err := in.evalExpr(ex.Value, ctx)
	if err != nil || sig.kind != sigNone {
		return value, sig, err
	}

	if op, compound := compoundOp[ex.Op]; compound {
		current, err := in.indexGet(target.PosVal, object, key)
		if err != nil {
			return Nil, noSignal, err
		}
		value, err = applyBinary(ex.PosVal, op, current, value)
		if err != nil {
			return Nil, noSignal, err
		}
	}

	if err := in.indexSet(target.PosVal, object, key, value); err != nil {
		return Nil, noSignal, err
	}
	return value, noSignal, nil
}
