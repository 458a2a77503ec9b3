package types

import "unsafe"

// Native is the constraint for buffer element types: fixed-size values with no
// embedded pointers, safe to copy and reinterpret as raw bytes.
//
// bool is deliberately excluded; boolean data is stored bit-packed in a
// uint8 buffer (see buffer.FromBools).
type Native interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Size returns the byte size of the element type T.
func Size[T Native]() int {
	var v T
	return int(unsafe.Sizeof(v))
}

// BytesFor returns the byte size of n elements of type T.
func BytesFor[T Native](n int) int {
	return n * Size[T]()
}
