package dataprep

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownClass is returned when encoding a class or decoding a code that
// is not part of the fitted mapping.
var ErrUnknownClass = errors.New("unknown class")

// LabelEncoder is a bijection between class strings and integer codes. Codes
// follow the lexicographic order of the distinct classes.
type LabelEncoder struct {
	classes []string
	codes   map[string]int
}

// FitLabelEncoder builds the mapping from the distinct values of data.
func FitLabelEncoder(data []string) *LabelEncoder {
	classes := slices.Clone(data)
	slices.Sort(classes)
	classes = slices.Compact(classes)

	codes := make(map[string]int, len(classes))
	for i, c := range classes {
		codes[c] = i
	}
	return &LabelEncoder{classes: classes, codes: codes}
}

// Len returns the number of classes.
func (e *LabelEncoder) Len() int { return len(e.classes) }

// Classes returns the classes in code order.
func (e *LabelEncoder) Classes() []string { return slices.Clone(e.classes) }

// Code returns the code of a class.
func (e *LabelEncoder) Code(class string) (int, bool) {
	c, ok := e.codes[class]
	return c, ok
}

// Class returns the class of a code.
func (e *LabelEncoder) Class(code int) (string, bool) {
	if code < 0 || code >= len(e.classes) {
		return "", false
	}
	return e.classes[code], true
}

// Encode maps each class to its code.
func (e *LabelEncoder) Encode(data []string) ([]int, error) {
	out := make([]int, len(data))
	for i, v := range data {
		c, ok := e.Code(v)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownClass, v)
		}
		out[i] = c
	}
	return out, nil
}

// Decode maps each code back to its class.
func (e *LabelEncoder) Decode(codes []int) ([]string, error) {
	out := make([]string, len(codes))
	for i, c := range codes {
		v, ok := e.Class(c)
		if !ok {
			return nil, fmt.Errorf("%w: code %d", ErrUnknownClass, c)
		}
		out[i] = v
	}
	return out, nil
}
