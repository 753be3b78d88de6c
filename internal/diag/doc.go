// Package diag defines the diagnostic model shared by the lexer, parser,
// extraction engines and the driver.
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// string ID (LEX1001, SYN2003, EXT3001, ...), a short Message, the Primary
// span and optional Notes and Fixes. Producers never format anything; they
// emit through a Reporter (BagReporter, DedupReporter, NopReporter) and the
// rendering lives in internal/diagfmt.
//
// Bag is a bounded collection. Once the limit is reached further diagnostics
// are dropped and Add reports false, which lets the parser stop early on
// badly broken input.
package diag
