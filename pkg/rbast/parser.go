// Package rbast provides the core Ruby AST representation.
//
// Note: The Parser interface lives in the checker package (checker.Parser)
// following the gobible principle of defining interfaces in the consumer package.
// Parser implementations should implement checker.Parser instead.
package rbast
