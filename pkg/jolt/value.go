package jolt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind tags the variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	}
	return "unknown"
}

// Object is the ordered mapping from spec.md §3: object key insertion
// order survives parse, transform and re-marshal.
type Object = orderedmap.OrderedMap[string, Value]

// Value is a tagged union over the JSON data model: null, boolean, number,
// string, ordered object, array. The zero Value is KindNull.
type Value struct {
	kind Kind
	b    bool
	n    json.Number
	s    string
	obj  *Object
	arr  []Value
}

func Null() Value             { return Value{kind: KindNull} }
func Bool(b bool) Value       { return Value{kind: KindBool, b: b} }
func Number(n json.Number) Value { return Value{kind: KindNumber, n: n} }
func NumberFromInt(i int) Value  { return Value{kind: KindNumber, n: json.Number(strconv.Itoa(i))} }
func String(s string) Value   { return Value{kind: KindString, s: s} }

// NewObject returns an empty, freshly allocated object Value.
func NewObject() Value { return Value{kind: KindObject, obj: orderedmap.New[string, Value]()} }

// NewArray returns an array Value holding items in order.
func NewArray(items ...Value) Value { return Value{kind: KindArray, arr: items} }

func (v Value) Kind() Kind          { return v.kind }
func (v Value) IsNull() bool        { return v.kind == KindNull }
func (v Value) BoolValue() bool     { return v.b }
func (v Value) NumberLiteral() json.Number { return v.n }
func (v Value) StringValue() string { return v.s }
func (v Value) Object() *Object     { return v.obj }
func (v Value) Array() []Value      { return v.arr }

// AsInt interprets a KindNumber Value as a non-negative integer, failing if
// it carries a fractional component or is negative.
func (v Value) AsInt() (int, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	f, err := v.n.Float64()
	if err != nil {
		return 0, false
	}
	if f != float64(int64(f)) {
		return 0, false
	}
	i := int64(f)
	if i < 0 {
		return 0, false
	}
	return int(i), true
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("jolt: empty JSON value")
	}
	switch data[0] {
	case 'n':
		*v = Null()
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = Bool(b)
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = String(s)
		return nil
	case '{':
		om := orderedmap.New[string, Value]()
		if err := json.Unmarshal(data, om); err != nil {
			return err
		}
		*v = Value{kind: KindObject, obj: om}
		return nil
	case '[':
		var arr []Value
		if err := json.Unmarshal(data, &arr); err != nil {
			return err
		}
		if arr == nil {
			arr = []Value{}
		}
		*v = Value{kind: KindArray, arr: arr}
		return nil
	default:
		*v = Value{kind: KindNumber, n: json.Number(string(data))}
		return nil
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindNumber:
		if v.n == "" {
			return []byte("0"), nil
		}
		return []byte(v.n.String()), nil
	case KindString:
		return json.Marshal(v.s)
	case KindObject:
		if v.obj == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(v.obj)
	case KindArray:
		if v.arr == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.arr)
	}
	return []byte("null"), nil
}

// cloneValue deep-copies a Value so a routed value placed at one output
// location can never alias a value placed (or later mutated via autoviv)
// at another.
func cloneValue(v Value) Value {
	switch v.kind {
	case KindObject:
		return Value{kind: KindObject, obj: cloneObject(v.obj)}
	case KindArray:
		arr := make([]Value, len(v.arr))
		for i, e := range v.arr {
			arr[i] = cloneValue(e)
		}
		return Value{kind: KindArray, arr: arr}
	default:
		return v
	}
}

func cloneObject(o *Object) *Object {
	out := orderedmap.New[string, Value]()
	if o == nil {
		return out
	}
	for pair := o.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, cloneValue(pair.Value))
	}
	return out
}

// ValuesEqual reports deep structural equality, including object key order.
func ValuesEqual(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		af, aerr := a.n.Float64()
		bf, berr := b.n.Float64()
		if aerr == nil && berr == nil {
			return af == bf
		}
		return a.n.String() == b.n.String()
	case KindString:
		return a.s == b.s
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !ValuesEqual(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if a.obj == nil || b.obj == nil {
			return a.obj == b.obj
		}
		if a.obj.Len() != b.obj.Len() {
			return false
		}
		bp := b.obj.Oldest()
		for ap := a.obj.Oldest(); ap != nil; ap = ap.Next() {
			if bp == nil || ap.Key != bp.Key || !ValuesEqual(ap.Value, bp.Value) {
				return false
			}
			bp = bp.Next()
		}
		return true
	}
	return false
}
