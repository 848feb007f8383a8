// Package token defines lexical token kinds and trivia for WGSL sources.
// Invariants:
//   - Token.Text is a slice of the original source, except for identifiers,
//     which are NFC normalized.
//   - Token.Span covers the lexeme exactly.
//   - Numeric literals keep their suffix (i, u, f, h) in Text; the parser
//     decides the literal type from it.
//   - Type names (i32, vec3, mat2x2f, array, ...) are identifiers. They are
//     recognized by the semantic layer, not the lexer.
//   - '>>' is always one token; the parser splits it when it closes two
//     template lists.
package token
