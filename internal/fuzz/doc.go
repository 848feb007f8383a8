// Package fuzztests holds Go fuzz harnesses for the front end and the
// evaluator. Arbitrary input must never panic or hang the lexer, the parser
// or a full evaluation.
package fuzztests
