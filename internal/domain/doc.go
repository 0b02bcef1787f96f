// Package domain contains the core business entities of the bookstore:
// books, authors and the validation rules they enforce independently of
// storage or transport.
package domain
