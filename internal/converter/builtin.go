package converter

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/GriffinCanCode/catalog/internal/library"
)

func init() {
	Install(library.DefaultHost)
}

// Install declares the built-in converters on host
func Install(host *library.Host) {
	m := host.Module(reflect.TypeOf(Bool{}).PkgPath(), library.PackagePath)
	declare := func(v any, name string) {
		m.Add(reflect.TypeOf(v),
			library.Tag{Name: name, Group: "converters"},
			library.With(&library.Singleton{}))
	}

	declare(Bool{}, "converter.bool")
	declare(String{}, "converter.string")
	declare(Int{}, "converter.int")
	declare(Int64{}, "converter.int64")
	declare(Float32{}, "converter.float32")
	declare(Float64{}, "converter.float64")
	declare(Duration{}, "converter.duration")
}

// Word lists accepted by Bool, compared case-insensitively
var (
	PassWords  = []string{"true", "accept", "grant", "correct", "positive", "1", "yes", "y"}
	BlockWords = []string{"false", "wrong", "negative", "0", "no", "n"}
)

// Bool converts pass and block words
type Bool struct{}

func (Bool) Convert(value string) (bool, error) {
	word := strings.ToLower(strings.TrimSpace(value))
	switch {
	case slices.Contains(PassWords, word):
		return true, nil
	case slices.Contains(BlockWords, word):
		return false, nil
	}
	return false, fmt.Errorf("%q is not a pass or block word", value)
}

// String returns the value unchanged
type String struct{}

func (String) Convert(value string) (string, error) {
	return value, nil
}

// Numeric converters accept anything cty parses as a number
type Int struct{}

func (Int) Convert(value string) (int, error) {
	return number[int](value)
}

type Int64 struct{}

func (Int64) Convert(value string) (int64, error) {
	return number[int64](value)
}

type Float32 struct{}

func (Float32) Convert(value string) (float32, error) {
	return number[float32](value)
}

type Float64 struct{}

func (Float64) Convert(value string) (float64, error) {
	return number[float64](value)
}

// Duration parses Go duration strings such as "1m30s"
type Duration struct{}

func (Duration) Convert(value string) (time.Duration, error) {
	return time.ParseDuration(strings.TrimSpace(value))
}

// number parses value as a cty number and narrows it to T, rejecting
// fractions for integers and out-of-range values
func number[T int | int64 | float32 | float64](value string) (T, error) {
	var out T
	n, err := convert.Convert(cty.StringVal(strings.TrimSpace(value)), cty.Number)
	if err != nil {
		return out, fmt.Errorf("%q is not a number: %w", value, err)
	}
	if err := gocty.FromCtyValue(n, &out); err != nil {
		return out, fmt.Errorf("%q does not fit %T: %w", value, out, err)
	}
	return out, nil
}
