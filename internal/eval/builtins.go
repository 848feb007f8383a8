package eval

import (
	"slices"

	"tint/internal/constant"
	"tint/internal/source"
	"tint/internal/types"
)

var builtins = map[string]Method{
	"abs":                (*Eval).Abs,
	"acos":               (*Eval).Acos,
	"acosh":              (*Eval).Acosh,
	"all":                (*Eval).All,
	"any":                (*Eval).Any,
	"asin":               (*Eval).Asin,
	"asinh":              (*Eval).Asinh,
	"atan":               (*Eval).Atan,
	"atan2":              (*Eval).Atan2,
	"atanh":              (*Eval).Atanh,
	"ceil":               (*Eval).Ceil,
	"clamp":              (*Eval).Clamp,
	"cos":                (*Eval).Cos,
	"cosh":               (*Eval).Cosh,
	"countLeadingZeros":  (*Eval).CountLeadingZeros,
	"countOneBits":       (*Eval).CountOneBits,
	"countTrailingZeros": (*Eval).CountTrailingZeros,
	"cross":              (*Eval).Cross,
	"degrees":            (*Eval).Degrees,
	"determinant":        (*Eval).Determinant,
	"distance":           (*Eval).Distance,
	"dot":                (*Eval).Dot,
	"dot4I8Packed":       (*Eval).Dot4I8Packed,
	"dot4U8Packed":       (*Eval).Dot4U8Packed,
	"exp":                (*Eval).Exp,
	"exp2":               (*Eval).Exp2,
	"extractBits":        (*Eval).ExtractBits,
	"faceForward":        (*Eval).FaceForward,
	"firstLeadingBit":    (*Eval).FirstLeadingBit,
	"firstTrailingBit":   (*Eval).FirstTrailingBit,
	"floor":              (*Eval).Floor,
	"fma":                (*Eval).Fma,
	"fract":              (*Eval).Fract,
	"frexp":              (*Eval).Frexp,
	"insertBits":         (*Eval).InsertBits,
	"inverseSqrt":        (*Eval).InverseSqrt,
	"ldexp":              (*Eval).Ldexp,
	"length":             (*Eval).Length,
	"log":                (*Eval).Log,
	"log2":               (*Eval).Log2,
	"max":                (*Eval).Max,
	"min":                (*Eval).Min,
	"mix":                (*Eval).Mix,
	"modf":               (*Eval).Modf,
	"normalize":          (*Eval).Normalize,
	"pack2x16float":      (*Eval).Pack2x16Float,
	"pack2x16snorm":      (*Eval).Pack2x16Snorm,
	"pack2x16unorm":      (*Eval).Pack2x16Unorm,
	"pack4x8snorm":       (*Eval).Pack4x8Snorm,
	"pack4x8unorm":       (*Eval).Pack4x8Unorm,
	"pack4xI8":           (*Eval).Pack4xI8,
	"pack4xI8Clamp":      (*Eval).Pack4xI8Clamp,
	"pack4xU8":           (*Eval).Pack4xU8,
	"pack4xU8Clamp":      (*Eval).Pack4xU8Clamp,
	"pow":                (*Eval).Pow,
	"quantizeToF16":      (*Eval).QuantizeToF16,
	"radians":            (*Eval).Radians,
	"reflect":            (*Eval).Reflect,
	"refract":            (*Eval).Refract,
	"reverseBits":        (*Eval).ReverseBits,
	"round":              (*Eval).Round,
	"saturate":           (*Eval).Saturate,
	"select":             (*Eval).Select,
	"sign":               (*Eval).Sign,
	"sin":                (*Eval).Sin,
	"sinh":               (*Eval).Sinh,
	"smoothstep":         (*Eval).Smoothstep,
	"sqrt":               (*Eval).Sqrt,
	"step":               (*Eval).Step,
	"tan":                (*Eval).Tan,
	"tanh":               (*Eval).Tanh,
	"transpose":          (*Eval).Transpose,
	"trunc":              (*Eval).Trunc,
	"unpack2x16float":    (*Eval).Unpack2x16Float,
	"unpack2x16snorm":    (*Eval).Unpack2x16Snorm,
	"unpack2x16unorm":    (*Eval).Unpack2x16Unorm,
	"unpack4x8snorm":     (*Eval).Unpack4x8Snorm,
	"unpack4x8unorm":     (*Eval).Unpack4x8Unorm,
	"unpack4xI8":         (*Eval).Unpack4xI8,
	"unpack4xU8":         (*Eval).Unpack4xU8,
}

// Builtin returns the method evaluating the builtin function name.
func Builtin(name string) (Method, bool) {
	m, ok := builtins[name]
	return m, ok
}

// BuiltinNames returns the names of all builtin functions in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Call runs m on args. Any nil argument makes the call non-constant.
func (e *Eval) Call(m Method, ty types.TypeID, args []constant.Value, src source.Span) (constant.Value, error) {
	for _, a := range args {
		if a == nil {
			return nil, nil
		}
	}
	return m(e, ty, args, src)
}
