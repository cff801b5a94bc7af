package script

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// decode converts a cty.Value to the type implied by the Go pointer goVal
// and stores it there.
func decode(val cty.Value, goVal any) error {
	valPtr := reflect.ValueOf(goVal)
	if valPtr.Kind() != reflect.Ptr {
		return fmt.Errorf("target for decoding must be a pointer, got %T", goVal)
	}
	if val.IsNull() {
		return fmt.Errorf("value must not be null")
	}

	impliedType, err := gocty.ImpliedType(valPtr.Elem().Interface())
	if err != nil {
		return gocty.FromCtyValue(val, goVal)
	}

	convertedVal, err := convert.Convert(val, impliedType)
	if err != nil {
		return fmt.Errorf("cannot convert %s to required type %s: %w", val.Type().FriendlyName(), impliedType.FriendlyName(), err)
	}
	return gocty.FromCtyValue(convertedVal, goVal)
}

// toFloat reads a known, non-null number.
func toFloat(v cty.Value) float64 {
	f, _ := v.AsBigFloat().Float64()
	return f
}

// numberVal wraps a float64, refusing NaN and infinities which cty cannot
// represent.
func numberVal(f float64) (cty.Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return cty.NilVal, fmt.Errorf("result %v is not a finite number", f)
	}
	return cty.NumberFloatVal(f), nil
}

// goToCty converts a value decoded from a param-set file.
func goToCty(v any) (cty.Value, error) {
	switch tv := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case bool:
		return cty.BoolVal(tv), nil
	case string:
		return cty.StringVal(tv), nil
	case int:
		return cty.NumberIntVal(int64(tv)), nil
	case int64:
		return cty.NumberIntVal(tv), nil
	case float64:
		return numberVal(tv)
	case json.Number:
		return cty.ParseNumberVal(tv.String())
	case []any:
		if len(tv) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(tv))
		for i, e := range tv {
			ev, err := goToCty(e)
			if err != nil {
				return cty.NilVal, err
			}
			elems[i] = ev
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		attrs := make(map[string]cty.Value, len(tv))
		for k, e := range tv {
			ev, err := goToCty(e)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[k] = ev
		}
		return cty.ObjectVal(attrs), nil
	case []map[string]any:
		elems := make([]any, len(tv))
		for i, e := range tv {
			elems[i] = e
		}
		return goToCty(elems)
	case map[any]any:
		attrs := make(map[string]any, len(tv))
		for k, e := range tv {
			key := fmt.Sprint(k)
			if _, dup := attrs[key]; dup {
				return cty.NilVal, fmt.Errorf("duplicate key %q in parameter value", key)
			}
			attrs[key] = e
		}
		return goToCty(attrs)
	}
	return cty.NilVal, fmt.Errorf("unsupported parameter value of type %T", v)
}

// ctyToGo converts a value to plain Go data through its JSON form.
func ctyToGo(v cty.Value) (any, error) {
	raw, err := json.Marshal(ctyjson.SimpleJSONValue{Value: v})
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
