package constructed

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/zclconf/go-cty/cty"
)

// toCty converts a host variable into a cty value for evaluation.
// Values arrive either straight from JSON decoding (string, bool,
// json.Number, nil, nested maps and slices) or from earlier compose
// results.
func toCty(value any) cty.Value {
	switch v := value.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType)
	case string:
		return cty.StringVal(v)
	case bool:
		return cty.BoolVal(v)
	case json.Number:
		if num, err := cty.ParseNumberVal(v.String()); err == nil {
			return num
		}
		return cty.StringVal(v.String())
	case int:
		return cty.NumberIntVal(int64(v))
	case int64:
		return cty.NumberIntVal(v)
	case float64:
		return cty.NumberFloatVal(v)
	case map[string]any:
		if len(v) == 0 {
			return cty.EmptyObjectVal
		}
		attrs := make(map[string]cty.Value, len(v))
		for key, item := range v {
			attrs[key] = toCty(item)
		}
		return cty.ObjectVal(attrs)
	case []any:
		if len(v) == 0 {
			return cty.EmptyTupleVal
		}
		items := make([]cty.Value, 0, len(v))
		for _, item := range v {
			items = append(items, toCty(item))
		}
		return cty.TupleVal(items)
	default:
		return cty.StringVal(fmt.Sprintf("%v", v))
	}
}

// fromCty converts an evaluation result back into a plain Go value so
// composed variables serialize like any other host variable.
func fromCty(value cty.Value) any {
	if value.IsNull() || !value.IsKnown() {
		return nil
	}

	ty := value.Type()
	switch {
	case ty == cty.String:
		return value.AsString()
	case ty == cty.Bool:
		return value.True()
	case ty == cty.Number:
		f := value.AsBigFloat()
		if n, acc := f.Int64(); acc == big.Exact {
			return n
		}
		out, _ := f.Float64()
		return out
	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		var items []any
		for it := value.ElementIterator(); it.Next(); {
			_, item := it.Element()
			items = append(items, fromCty(item))
		}
		return items
	case ty.IsMapType() || ty.IsObjectType():
		out := map[string]any{}
		for it := value.ElementIterator(); it.Next(); {
			key, item := it.Element()
			out[key.AsString()] = fromCty(item)
		}
		return out
	default:
		return nil
	}
}

// truthy decides composed-group membership from an expression result.
func truthy(value cty.Value) bool {
	if value.IsNull() || !value.IsKnown() {
		return false
	}

	ty := value.Type()
	switch {
	case ty == cty.Bool:
		return value.True()
	case ty == cty.String:
		return value.AsString() != ""
	case ty == cty.Number:
		return value.AsBigFloat().Sign() != 0
	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType() || ty.IsMapType() || ty.IsObjectType():
		return value.LengthInt() > 0
	default:
		return true
	}
}

// formatValue renders a keyed-group key result as a group name part.
// Null renders empty, which falls through to default_value handling.
func formatValue(value cty.Value) string {
	if value.IsNull() || !value.IsKnown() {
		return ""
	}

	ty := value.Type()
	switch {
	case ty == cty.String:
		return value.AsString()
	case ty == cty.Bool:
		if value.True() {
			return "true"
		}
		return "false"
	case ty == cty.Number:
		return value.AsBigFloat().Text('f', -1)
	default:
		return fmt.Sprintf("%v", fromCty(value))
	}
}
