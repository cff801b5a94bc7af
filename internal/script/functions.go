package script

import (
	"fmt"
	"math"
	"os"
	"unicode/utf8"

	"github.com/specialistvlad/hclsketch/internal/rng"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// mathFunc builds a function over a fixed number of numbers.
func mathFunc(params []string, fn func(args []float64) (float64, error)) function.Function {
	spec := &function.Spec{
		Type: function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			nums := make([]float64, len(args))
			for i, a := range args {
				nums[i] = toFloat(a)
			}
			res, err := fn(nums)
			if err != nil {
				return cty.NilVal, err
			}
			return numberVal(res)
		},
	}
	for _, name := range params {
		spec.Params = append(spec.Params, function.Parameter{Name: name, Type: cty.Number})
	}
	return function.New(spec)
}

// varMathFunc builds a function over between minArgs and maxArgs numbers.
func varMathFunc(name string, minArgs, maxArgs int, fn func(args []float64) (float64, error)) function.Function {
	return function.New(&function.Spec{
		VarParam: &function.Parameter{Name: "values", Type: cty.Number},
		Type:     function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			if len(args) < minArgs || len(args) > maxArgs {
				return cty.NilVal, fmt.Errorf("%s takes %d to %d arguments, got %d", name, minArgs, maxArgs, len(args))
			}
			nums := make([]float64, len(args))
			for i, a := range args {
				nums[i] = toFloat(a)
			}
			res, err := fn(nums)
			if err != nil {
				return cty.NilVal, err
			}
			return numberVal(res)
		},
	})
}

func unary(fn func(float64) float64) func([]float64) (float64, error) {
	return func(a []float64) (float64, error) { return fn(a[0]), nil }
}

// fileFunc reads a file relative to the current working directory.
var fileFunc = function.New(&function.Spec{
	Params: []function.Parameter{{Name: "path", Type: cty.String}},
	Type:   function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		path := args[0].AsString()
		src, err := os.ReadFile(path)
		if err != nil {
			return cty.NilVal, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if !utf8.Valid(src) {
			return cty.NilVal, fmt.Errorf("contents of %s are not valid UTF-8", path)
		}
		return cty.StringVal(string(src)), nil
	},
})

// envFunc reads an environment variable, falling back to an optional
// default when it is unset.
var envFunc = function.New(&function.Spec{
	Params:   []function.Parameter{{Name: "name", Type: cty.String}},
	VarParam: &function.Parameter{Name: "default", Type: cty.String},
	Type:     function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		name := args[0].AsString()
		if v, ok := os.LookupEnv(name); ok {
			return cty.StringVal(v), nil
		}
		switch len(args) {
		case 1:
			return cty.NilVal, fmt.Errorf("environment variable %s is not set", name)
		case 2:
			return args[1], nil
		}
		return cty.NilVal, fmt.Errorf("env takes at most one default, got %d", len(args)-1)
	},
})

// pureFunctions are available everywhere, including top-level script code.
func pureFunctions() map[string]function.Function {
	return map[string]function.Function{
		"abs":        stdlib.AbsoluteFunc,
		"ceil":       stdlib.CeilFunc,
		"floor":      stdlib.FloorFunc,
		"max":        stdlib.MaxFunc,
		"min":        stdlib.MinFunc,
		"pow":        stdlib.PowFunc,
		"log":        stdlib.LogFunc,
		"signum":     stdlib.SignumFunc,
		"mod":        stdlib.ModuloFunc,
		"length":     stdlib.LengthFunc,
		"concat":     stdlib.ConcatFunc,
		"range":      stdlib.RangeFunc,
		"element":    stdlib.ElementFunc,
		"format":     stdlib.FormatFunc,
		"jsondecode": stdlib.JSONDecodeFunc,
		"csvdecode":  stdlib.CSVDecodeFunc,
		"file":       fileFunc,
		"env":        envFunc,
		"pi":         mathFunc(nil, func([]float64) (float64, error) { return math.Pi, nil }),
		"sin":        mathFunc([]string{"x"}, unary(math.Sin)),
		"cos":        mathFunc([]string{"x"}, unary(math.Cos)),
		"tan":        mathFunc([]string{"x"}, unary(math.Tan)),
		"sqrt":       mathFunc([]string{"x"}, unary(math.Sqrt)),
		"radians":    mathFunc([]string{"degrees"}, unary(func(d float64) float64 { return d * math.Pi / 180 })),
		"atan2": mathFunc([]string{"y", "x"}, func(a []float64) (float64, error) {
			return math.Atan2(a[0], a[1]), nil
		}),
		"lerp": mathFunc([]string{"start", "stop", "amount"}, func(a []float64) (float64, error) {
			return a[0] + (a[1]-a[0])*a[2], nil
		}),
		"map_range": mathFunc([]string{"value", "start1", "stop1", "start2", "stop2"}, func(a []float64) (float64, error) {
			if a[2] == a[1] {
				return 0, fmt.Errorf("map_range: input range is empty")
			}
			return a[3] + (a[4]-a[3])*(a[0]-a[1])/(a[2]-a[1]), nil
		}),
	}
}

// globalRandomFunctions draw from the process-wide sources in package rng.
func globalRandomFunctions() map[string]function.Function {
	return map[string]function.Function{
		"rand_int": mathFunc([]string{"low", "high"}, func(a []float64) (float64, error) {
			low, err := exactInt("low", a[0])
			if err != nil {
				return 0, err
			}
			high, err := exactInt("high", a[1])
			if err != nil {
				return 0, err
			}
			return float64(rng.IntRange(low, high)), nil
		}),
		"rand_choice": function.New(&function.Spec{
			Params: []function.Parameter{{Name: "list", Type: cty.DynamicPseudoType}},
			Type:   function.StaticReturnType(cty.DynamicPseudoType),
			Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
				elems, err := sequence(args[0])
				if err != nil {
					return cty.NilVal, err
				}
				if len(elems) == 0 {
					return cty.NilVal, fmt.Errorf("rand_choice: list is empty")
				}
				return elems[rng.Choice(len(elems))], nil
			},
		}),
		"uniform": arrayFunc(rng.Uniform),
		"normal":  arrayFunc(rng.Normal),
		"shuffle": function.New(&function.Spec{
			Params: []function.Parameter{{Name: "list", Type: cty.DynamicPseudoType}},
			Type:   function.StaticReturnType(cty.DynamicPseudoType),
			Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
				elems, err := sequence(args[0])
				if err != nil {
					return cty.NilVal, err
				}
				if len(elems) == 0 {
					return args[0], nil
				}
				shuffled := make([]cty.Value, len(elems))
				for i, j := range rng.Permutation(len(elems)) {
					shuffled[i] = elems[j]
				}
				if args[0].Type().IsListType() {
					return cty.ListVal(shuffled), nil
				}
				return cty.TupleVal(shuffled), nil
			},
		}),
	}
}

// maxExactInt is the largest magnitude at which every integer is exactly
// representable as a float64.
const maxExactInt = 1 << 53

// exactInt converts a whole number within ±2^53 to an int.
func exactInt(name string, f float64) (int, error) {
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%s must be a whole number, got %v", name, f)
	}
	if math.Abs(f) > maxExactInt {
		return 0, fmt.Errorf("%s must be between -2^53 and 2^53, got %v", name, f)
	}
	return int(f), nil
}

// arrayFunc wraps a bulk generator taking two numbers and a count.
func arrayFunc(gen func(a, b float64, n int) []float64) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "a", Type: cty.Number},
			{Name: "b", Type: cty.Number},
			{Name: "n", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.List(cty.Number)),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			n := int(toFloat(args[2]))
			if n < 0 {
				return cty.NilVal, fmt.Errorf("count must not be negative, got %d", n)
			}
			if n == 0 {
				return cty.ListValEmpty(cty.Number), nil
			}
			vals := gen(toFloat(args[0]), toFloat(args[1]), n)
			out := make([]cty.Value, len(vals))
			for i, v := range vals {
				nv, err := numberVal(v)
				if err != nil {
					return cty.NilVal, err
				}
				out[i] = nv
			}
			return cty.ListVal(out), nil
		},
	})
}

// sequence returns the elements of a list or tuple.
func sequence(v cty.Value) ([]cty.Value, error) {
	ty := v.Type()
	if !ty.IsListType() && !ty.IsTupleType() {
		return nil, fmt.Errorf("expected a list, got %s", ty.FriendlyName())
	}
	return v.AsValueSlice(), nil
}

// instanceFunctions draw from the randomness sources of one sketch instance.
func (s *Sketch) instanceFunctions() map[string]function.Function {
	return map[string]function.Function{
		"random": varMathFunc("random", 1, 2, func(a []float64) (float64, error) {
			low, high := 0.0, a[0]
			if len(a) == 2 {
				low, high = a[0], a[1]
			}
			return low + (high-low)*s.rand.Float64(), nil
		}),
		"random_gaussian": mathFunc(nil, func([]float64) (float64, error) {
			return s.rand.NormFloat64(), nil
		}),
		"noise": varMathFunc("noise", 1, 3, func(a []float64) (float64, error) {
			return s.noiseAt(a...), nil
		}),
	}
}

// merged combines function tables; later tables win.
func merged(tables ...map[string]function.Function) map[string]function.Function {
	out := make(map[string]function.Function)
	for _, t := range tables {
		for name, fn := range t {
			out[name] = fn
		}
	}
	return out
}
