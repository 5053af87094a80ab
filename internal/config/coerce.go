package config

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// coerce converts a raw value to the declared type.
func coerce(v cty.Value, want Type) (any, error) {
	v, err := flatten(v)
	if err != nil {
		return nil, err
	}

	switch want {
	case TypeInt:
		n, err := convert.Convert(v, cty.Number)
		if err != nil {
			return nil, err
		}
		var i int
		if err := gocty.FromCtyValue(n, &i); err != nil {
			return nil, err
		}
		return i, nil
	case TypeBool:
		b, err := convert.Convert(v, cty.Bool)
		if err != nil {
			return nil, err
		}
		return b.True(), nil
	default:
		s, err := convert.Convert(v, cty.String)
		if err != nil {
			return nil, err
		}
		return s.AsString(), nil
	}
}

// infer picks a type for a setting the schema does not declare
func infer(v cty.Value) (Type, any, error) {
	v, err := flatten(v)
	if err != nil {
		return "", nil, err
	}

	switch v.Type() {
	case cty.Bool:
		return TypeBool, v.True(), nil
	case cty.Number:
		if v.AsBigFloat().IsInt() {
			var i int
			if err := gocty.FromCtyValue(v, &i); err == nil {
				return TypeInt, i, nil
			}
		}
		bf := v.AsBigFloat()
		return TypeString, bf.Text('f', -1), nil
	default:
		return TypeString, v.AsString(), nil
	}
}

// flatten rejects null and unknown values and joins sequences of
// primitives into a comma separated string.
func flatten(v cty.Value) (cty.Value, error) {
	if v.IsNull() {
		return cty.NilVal, fmt.Errorf("value is null")
	}
	if !v.IsWhollyKnown() {
		return cty.NilVal, fmt.Errorf("value is not known")
	}

	ty := v.Type()
	if !ty.IsListType() && !ty.IsTupleType() && !ty.IsSetType() {
		if !ty.IsPrimitiveType() {
			return cty.NilVal, fmt.Errorf("%s is not a primitive value", ty.FriendlyName())
		}
		return v, nil
	}

	var items []string
	for it := v.ElementIterator(); it.Next(); {
		_, el := it.Element()
		s, err := convert.Convert(el, cty.String)
		if err != nil || s.IsNull() {
			return cty.NilVal, fmt.Errorf("list items must be strings, numbers or bools")
		}
		items = append(items, s.AsString())
	}
	return cty.StringVal(strings.Join(items, ", ")), nil
}

// ToValue converts a decoded JSON/YAML scalar or list into a cty value.
func ToValue(v any) (cty.Value, error) {
	switch t := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case string:
		return cty.StringVal(t), nil
	case bool:
		return cty.BoolVal(t), nil
	case int:
		return cty.NumberIntVal(int64(t)), nil
	case int64:
		return cty.NumberIntVal(t), nil
	case uint64:
		return cty.NumberUIntVal(t), nil
	case float64:
		return cty.NumberFloatVal(t), nil
	case interface{ String() string }:
		// json.Number
		f, ok := new(big.Float).SetString(t.String())
		if !ok {
			return cty.NilVal, fmt.Errorf("invalid number %q", t.String())
		}
		return cty.NumberVal(f), nil
	case []any:
		if len(t) == 0 {
			return cty.ListValEmpty(cty.String), nil
		}
		vals := make([]cty.Value, 0, len(t))
		for _, item := range t {
			cv, err := ToValue(item)
			if err != nil {
				return cty.NilVal, err
			}
			vals = append(vals, cv)
		}
		return cty.TupleVal(vals), nil
	default:
		return cty.NilVal, fmt.Errorf("unsupported value of type %T", v)
	}
}
