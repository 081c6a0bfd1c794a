package utils

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v2"
)

// PropertyEqual compares two property values.
// Numbers are compared by value regardless of the underlying type.
func PropertyEqual(x, y interface{}) (eq bool) {
	if xf, ok := toNumber(x); ok {
		if yf, ok := toNumber(y); ok {
			return xf == yf
		}
	}

	defer func() {
		if r := recover(); r != nil {
			eq = reflect.DeepEqual(x, y)
		}
	}()

	return cmp.Equal(x, y)
}

// ToBool converts property value into a boolean.
// Unknown values are treated as false.
func ToBool(x interface{}) bool {
	switch v := x.(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	}

	if f, ok := toNumber(x); ok {
		return f != 0
	}

	return false
}

// ToFloat converts property value into a float.
func ToFloat(x interface{}) (float64, bool) {
	if f, ok := toNumber(x); ok {
		return f, true
	}

	s, ok := x.(string)
	if !ok {
		return 0, false
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f, err == nil
}

// ToInt converts property value into an integer.
func ToInt(x interface{}) int {
	f, _ := ToFloat(x)
	return int(f)
}

// ToString converts property value into a string.
func ToString(x interface{}) string {
	switch v := x.(type) {
	case nil:
		return ""
	case string:
		return v
	}

	return fmt.Sprintf("%v", x)
}

// ConvertProperty converts generic map representation into the target type.
func ConvertProperty(from, to interface{}) error {
	data, err := yaml.Marshal(from)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, to)
}

// Converts numeric kinds into float64.
func toNumber(x interface{}) (float64, bool) {
	switch v := x.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}

	return 0, false
}
