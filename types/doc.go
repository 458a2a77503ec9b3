// Package types defines the element types that colgo buffers can hold.
//
// A buffer element must be a fixed-size value with no internal pointers, so
// that it can be moved and shared as raw bytes. The Native constraint captures
// exactly that set: the sized integer and floating point types, plus any type
// whose underlying type is one of them.
package types
