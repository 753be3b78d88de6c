// Package casefmt renders signatures and test cases: pretty text for the terminal,
// JSON and msgpack for tools. JSON and msgpack keep parameter order.
package casefmt
