package functions

import (
	"github.com/spf13/cast"

	"github.com/mlql/mlql/internal/ir"
)

// InferLiteralType maps an ir.Value's runtime Kind to the ArgType an
// overload resolver compares against a Signature's declared argument
// types. It never fails: values of a kind the type system has no precise
// match for (Bytes, Array, Object) resolve to Unknown rather than rejecting
// the call, leaving a stricter check to a later validation stage if needed.
func InferLiteralType(v ir.Value) ArgType {
	switch v.Kind {
	case ir.KindBool:
		return ArgType(ir.TypeBool)
	case ir.KindInt:
		return ArgType(ir.TypeInt64)
	case ir.KindFloat:
		return ArgType(ir.TypeFloat64)
	case ir.KindString:
		return ArgType(ir.TypeString)
	default:
		return Unknown
	}
}

// CoerceToFloat64 converts a literal to float64: floats as they are, integers
// and numeric strings through cast (e.g. an integer literal passed where a
// signature declares f64).
func CoerceToFloat64(v ir.Value) (float64, error) {
	switch v.Kind {
	case ir.KindFloat:
		return v.Float, nil
	case ir.KindInt:
		return cast.ToFloat64E(v.Int)
	case ir.KindString:
		return cast.ToFloat64E(v.Str)
	default:
		return cast.ToFloat64E(nil)
	}
}
