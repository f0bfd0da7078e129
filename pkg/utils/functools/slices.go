// Package functools holds small generic helpers for transforming slices.
package functools

import "github.com/pkg/errors"

// Map applies fn to every element. A nil slice maps to nil.
func Map[T any, R any](slice []T, fn func(T) R) []R {
	if slice == nil {
		return nil
	}
	result := make([]R, len(slice))
	for i, v := range slice {
		result[i] = fn(v)
	}
	return result
}

// MapWithError applies fn to every element and stops at the first error,
// which is annotated with the failing index.
func MapWithError[T any, R any](slice []T, fn func(T) (R, error)) ([]R, error) {
	if slice == nil {
		return nil, nil
	}
	result := make([]R, 0, len(slice))
	for i, v := range slice {
		r, err := fn(v)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		result = append(result, r)
	}
	return result, nil
}

// Filter returns the elements for which keep reports true.
func Filter[T any](slice []T, keep func(T) bool) []T {
	if slice == nil {
		return nil
	}
	result := make([]T, 0, len(slice))
	for _, v := range slice {
		if keep(v) {
			result = append(result, v)
		}
	}
	return result
}
