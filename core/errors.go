package core

import "errors"

// Training and encoding failures. Callers match them with errors.Is.
var (
	// ErrUnknownCategory is returned when a value was not seen while fitting an encoding.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrInsufficientHistory is returned when a series has fewer than two distinct dates.
	ErrInsufficientHistory = errors.New("insufficient history")

	// ErrInvalidSeries is returned when a series holds a NaN or infinite value.
	ErrInvalidSeries = errors.New("invalid series")

	// ErrEmptyDataset is returned when the classifier is given no rows.
	ErrEmptyDataset = errors.New("empty dataset")

	// ErrLabelImbalance is returned when a class has too few rows to stratify.
	ErrLabelImbalance = errors.New("label imbalance")
)
