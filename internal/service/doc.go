// Package service coordinates the stores for operations that touch more
// than one table or need a transaction, such as replacing the authors of a
// book. Errors from the store layer are returned unchanged so the API layer
// can classify them with errors.Is.
package service
