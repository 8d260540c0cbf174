package feature

import (
	"fmt"
	"sort"
)

// EncodingError reports a categorical value that was absent from the fitted
// vocabulary. Prediction inputs carrying such a value are rejected rather
// than silently re-encoded.
type EncodingError struct {
	Column string
	Value  string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("feature: unknown value %q for column %q", e.Value, e.Column)
}

// LabelEncoder maps the distinct string values of one categorical column to
// integer codes. Classes are kept sorted ascending, so a given fitted
// vocabulary always produces the same codes. Fields are exported for gob.
type LabelEncoder struct {
	Column  string
	Classes []string
}

// FitLabelEncoder builds an encoder over the distinct values of a column.
func FitLabelEncoder(column string, values []string) *LabelEncoder {
	seen := make(map[string]struct{}, 8)
	classes := make([]string, 0, 8)
	for _, v := range values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			classes = append(classes, v)
		}
	}
	sort.Strings(classes)
	return &LabelEncoder{Column: column, Classes: classes}
}

// Transform returns the code for v. Values outside the fitted vocabulary
// return an *EncodingError; an unfitted encoder returns ErrNotFitted.
func (e *LabelEncoder) Transform(v string) (int, error) {
	if e == nil || len(e.Classes) == 0 {
		return 0, ErrNotFitted
	}
	i := sort.SearchStrings(e.Classes, v)
	if i >= len(e.Classes) || e.Classes[i] != v {
		return 0, &EncodingError{Column: e.Column, Value: v}
	}
	return i, nil
}

// TransformAll encodes a full column.
func (e *LabelEncoder) TransformAll(values []string) ([]int, error) {
	out := make([]int, len(values))
	for i, v := range values {
		code, err := e.Transform(v)
		if err != nil {
			return nil, err
		}
		out[i] = code
	}
	return out, nil
}

// Inverse returns the class for a code.
func (e *LabelEncoder) Inverse(code int) (string, error) {
	if e == nil || len(e.Classes) == 0 {
		return "", ErrNotFitted
	}
	if code < 0 || code >= len(e.Classes) {
		return "", fmt.Errorf("feature: code %d out of range for column %q", code, e.Column)
	}
	return e.Classes[code], nil
}
