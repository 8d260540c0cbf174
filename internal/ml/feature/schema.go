// Package feature implements the fixed feature schema and the codec that
// turns raw rating attributes into the numeric rows the models consume:
// label encoding for categorical columns and standardization for the full
// row. Both halves are fitted exactly once per training run and fail closed
// afterwards.
package feature

import "errors"

// Column names of the model input schema, in order.
const (
	ColumnAge      = "age"
	ColumnGender   = "gender"
	ColumnBMI      = "bmi"
	ColumnChildren = "children"
	ColumnSmoker   = "smoker"
	ColumnRegion   = "region"
)

// Names is the fixed model input schema.
var Names = []string{ColumnAge, ColumnGender, ColumnBMI, ColumnChildren, ColumnSmoker, ColumnRegion}

// CategoricalColumns are the columns that pass through a LabelEncoder.
var CategoricalColumns = []string{ColumnGender, ColumnSmoker, ColumnRegion}

// NumFeatures is the width of an encoded feature row.
const NumFeatures = 6

// ErrNotFitted is returned when Transform runs before Fit. The codec never
// fits implicitly.
var ErrNotFitted = errors.New("feature: codec not fitted")
