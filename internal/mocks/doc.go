// Package mocks provides function-field test doubles for the interfaces
// consumed by the API layer and the services.
//
// Each mock calls its XxxFn field when set and otherwise returns the default
// value fields, so simple tests only fill in data while complex ones can
// inspect arguments.
package mocks
