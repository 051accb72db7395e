package interp

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// ---------------------------------------------------------------------------
// Value: the closed tagged union of Fen runtime values
// ---------------------------------------------------------------------------

// Kind identifies the runtime kind of a Value.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindAtom
	KindList
	KindDict
	KindRange
	KindFunction
)

var kindNames = map[Kind]string{
	KindNil:      "Nil",
	KindBool:     "Bool",
	KindNumber:   "Number",
	KindString:   "String",
	KindAtom:     "Atom",
	KindList:     "List",
	KindDict:     "Dict",
	KindRange:    "Range",
	KindFunction: "Function",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// List is the shared storage behind a list value. Copying a Value copies
// the handle, not the elements: every alias observes mutation.
type List struct {
	Items []Value
}

// Dict is the shared storage behind a dict value. Same aliasing rules as
// List. Insertion order is not significant.
type Dict struct {
	Entries map[string]Value
}

// Range is a half-open numeric range.
type Range struct {
	Start float64
	End   float64
}

// Value is a Fen runtime value. The zero Value is nil.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string // String payload and Atom name
	list *List
	dict *Dict
	rng  *Range
	fn   Callable
}

// Nil is the nil value.
var Nil = Value{kind: KindNil}

// Constructors

func BoolValue(b bool) Value      { return Value{kind: KindBool, b: b} }
func NumberValue(n float64) Value { return Value{kind: KindNumber, n: n} }
func StringValue(s string) Value  { return Value{kind: KindString, s: s} }
func AtomValue(name string) Value { return Value{kind: KindAtom, s: name} }
func RangeValue(start, end float64) Value {
	return Value{kind: KindRange, rng: &Range{Start: start, End: end}}
}
func FunctionValue(fn Callable) Value { return Value{kind: KindFunction, fn: fn} }

// NewList creates a list value owning fresh storage.
func NewList(items ...Value) Value {
	return Value{kind: KindList, list: &List{Items: items}}
}

// NewDict creates a dict value owning fresh storage.
func NewDict() Value {
	return Value{kind: KindDict, dict: &Dict{Entries: make(map[string]Value)}}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNil reports whether v is the nil value.
func (v Value) IsNil() bool { return v.kind == KindNil }

// ---------------------------------------------------------------------------
// Casts: the single choke point for kind mismatches
// ---------------------------------------------------------------------------

// CastError reports a value of the wrong kind reaching a typed accessor.
type CastError struct {
	From Kind
	To   Kind
}

func (e *CastError) Error() string {
	return fmt.Sprintf("cannot use %s as %s", e.From, e.To)
}

// Bool extracts the boolean payload.
func (v Value) Bool() (bool, error) {
	if v.kind != KindBool {
		return false, &CastError{From: v.kind, To: KindBool}
	}
	return v.b, nil
}

// Number extracts the numeric payload.
func (v Value) Number() (float64, error) {
	if v.kind != KindNumber {
		return 0, &CastError{From: v.kind, To: KindNumber}
	}
	return v.n, nil
}

// Str extracts the string payload.
func (v Value) Str() (string, error) {
	if v.kind != KindString {
		return "", &CastError{From: v.kind, To: KindString}
	}
	return v.s, nil
}

// Atom extracts the atom name.
func (v Value) Atom() (string, error) {
	if v.kind != KindAtom {
		return "", &CastError{From: v.kind, To: KindAtom}
	}
	return v.s, nil
}

// List extracts the shared list handle.
func (v Value) List() (*List, error) {
	if v.kind != KindList {
		return nil, &CastError{From: v.kind, To: KindList}
	}
	return v.list, nil
}

// Dict extracts the shared dict handle.
func (v Value) Dict() (*Dict, error) {
	if v.kind != KindDict {
		return nil, &CastError{From: v.kind, To: KindDict}
	}
	return v.dict, nil
}

// Range extracts the range payload.
func (v Value) Range() (*Range, error) {
	if v.kind != KindRange {
		return nil, &CastError{From: v.kind, To: KindRange}
	}
	return v.rng, nil
}

// Callable extracts the callable payload.
func (v Value) Callable() (Callable, error) {
	if v.kind != KindFunction {
		return nil, &CastError{From: v.kind, To: KindFunction}
	}
	return v.fn, nil
}

// IsIntegral reports whether v is a Number with no fractional part.
func (v Value) IsIntegral() bool {
	return v.kind == KindNumber && v.n == float64(int64(v.n))
}

// ---------------------------------------------------------------------------
// Truthiness and equality
// ---------------------------------------------------------------------------

// Truthy reports the value's truthiness: nil and false are falsy,
// everything else is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNil:
		return false
	case KindBool:
		return v.b
	default:
		return true
	}
}

// Equal reports deep equality: equal kind and equal payload. Containers
// compare by contents, not handle identity. Callables compare by identity
// of their definition only.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.n == o.n
	case KindString, KindAtom:
		return v.s == o.s
	case KindRange:
		return v.rng.Start == o.rng.Start && v.rng.End == o.rng.End
	case KindList:
		if len(v.list.Items) != len(o.list.Items) {
			return false
		}
		for i, item := range v.list.Items {
			if !item.Equal(o.list.Items[i]) {
				return false
			}
		}
		return true
	case KindDict:
		if len(v.dict.Entries) != len(o.dict.Entries) {
			return false
		}
		for key, item := range v.dict.Entries {
			other, ok := o.dict.Entries[key]
			if !ok || !item.Equal(other) {
				return false
			}
		}
		return true
	case KindFunction:
		return v.fn == o.fn
	}
	return false
}

// ---------------------------------------------------------------------------
// Rendering
// ---------------------------------------------------------------------------

// Render returns the canonical textual rendering of v, as produced by
// print and the string builtin. Strings render raw at the top level and
// quoted inside containers.
func (v Value) Render() string {
	if v.kind == KindString {
		return v.s
	}
	return v.renderQuoted()
}

// String implements fmt.Stringer via Render.
func (v Value) String() string { return v.Render() }

func (v Value) renderQuoted() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return formatNumber(v.n)
	case KindString:
		return strconv.Quote(v.s)
	case KindAtom:
		// Capitalized atoms render without the marker.
		first := []rune(v.s)
		if len(first) > 0 && unicode.IsUpper(first[0]) {
			return v.s
		}
		return "#" + v.s
	case KindList:
		var sb strings.Builder
		sb.WriteByte('[')
		for i, item := range v.list.Items {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(item.renderQuoted())
		}
		sb.WriteByte(']')
		return sb.String()
	case KindDict:
		if len(v.dict.Entries) == 0 {
			return "[:]"
		}
		keys := make([]string, 0, len(v.dict.Entries))
		for key := range v.dict.Entries {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var sb strings.Builder
		sb.WriteByte('[')
		for i, key := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(key)
			sb.WriteString(": ")
			sb.WriteString(v.dict.Entries[key].renderQuoted())
		}
		sb.WriteByte(']')
		return sb.String()
	case KindRange:
		return formatNumber(v.rng.Start) + ".." + formatNumber(v.rng.End)
	case KindFunction:
		return v.fn.Describe()
	}
	return "<?>"
}

// formatNumber renders a Number without a trailing fractional part for
// integral values and without exponent notation.
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
