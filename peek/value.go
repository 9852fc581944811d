package peek

import (
	"fmt"
	"reflect"
	"unsafe"

	"gopeek/process"
)

// SizeOf returns the number of bytes PeekValue reads for T
func SizeOf[T any]() process.ProcessMemorySize {
	var t T
	return process.ProcessMemorySize(unsafe.Sizeof(t))
}

// PeekValue reads a T at addr. The value is only returned once all
// SizeOf[T] bytes have been read; a short read or OS failure returns the zero
// T and a *process.ReadError.
//
// T must be plain data: any bit pattern in the target must be a valid T.
// Types holding Go pointers, strings, slices, maps, interfaces, funcs or
// channels are rejected with process.ErrNotPlainData.
func PeekValue[T any](r *Reader, addr process.ProcessMemoryAddress) (T, error) {
	var zero T

	if hasPointers[T]() {
		return zero, fmt.Errorf("PeekValue[%T]: %w", zero, process.ErrNotPlainData)
	}

	size := int(SizeOf[T]())
	if size == 0 {
		return zero, nil
	}

	var v T
	buf := unsafe.Slice((*byte)(unsafe.Pointer(&v)), size)

	n, complete, err := r.ReadRaw(addr, buf)
	if err != nil {
		return zero, err
	}
	if !complete {
		return zero, process.NewPartialReadError(addr, size, n)
	}

	return v, nil
}

// hasPointers reports whether T (recursively) contains any pointer-like fields.
func hasPointers[T any]() bool {
	return typeHasPointers(reflect.TypeOf((*T)(nil)).Elem())
}

func typeHasPointers(rt reflect.Type) bool {
	switch rt.Kind() {
	case reflect.Ptr, reflect.UnsafePointer, reflect.Interface, reflect.Func, reflect.Map, reflect.Slice, reflect.String, reflect.Chan:
		return true
	case reflect.Array:
		return typeHasPointers(rt.Elem())
	case reflect.Struct:
		for i := 0; i < rt.NumField(); i++ {
			if typeHasPointers(rt.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		// bool, ints, uints, uintptr, floats, complex
		return false
	}
}

// PeekUint8 reads an unsigned 8-bit integer from the specified address
func (r *Reader) PeekUint8(addr process.ProcessMemoryAddress) (uint8, error) {
	return PeekValue[uint8](r, addr)
}

// PeekUint16 reads an unsigned 16-bit integer from the specified address
func (r *Reader) PeekUint16(addr process.ProcessMemoryAddress) (uint16, error) {
	return PeekValue[uint16](r, addr)
}

// PeekUint32 reads an unsigned 32-bit integer from the specified address
func (r *Reader) PeekUint32(addr process.ProcessMemoryAddress) (uint32, error) {
	return PeekValue[uint32](r, addr)
}

// PeekUint64 reads an unsigned 64-bit integer from the specified address
func (r *Reader) PeekUint64(addr process.ProcessMemoryAddress) (uint64, error) {
	return PeekValue[uint64](r, addr)
}

// PeekInt8 reads a signed 8-bit integer from the specified address
func (r *Reader) PeekInt8(addr process.ProcessMemoryAddress) (int8, error) {
	return PeekValue[int8](r, addr)
}

// PeekInt16 reads a signed 16-bit integer from the specified address
func (r *Reader) PeekInt16(addr process.ProcessMemoryAddress) (int16, error) {
	return PeekValue[int16](r, addr)
}

// PeekInt32 reads a signed 32-bit integer from the specified address
func (r *Reader) PeekInt32(addr process.ProcessMemoryAddress) (int32, error) {
	return PeekValue[int32](r, addr)
}

// PeekInt64 reads a signed 64-bit integer from the specified address
func (r *Reader) PeekInt64(addr process.ProcessMemoryAddress) (int64, error) {
	return PeekValue[int64](r, addr)
}

// PeekFloat32 reads a 32-bit floating point number from the specified address
func (r *Reader) PeekFloat32(addr process.ProcessMemoryAddress) (float32, error) {
	return PeekValue[float32](r, addr)
}

// PeekFloat64 reads a 64-bit floating point number from the specified address
func (r *Reader) PeekFloat64(addr process.ProcessMemoryAddress) (float64, error) {
	return PeekValue[float64](r, addr)
}

// PeekPointer reads a pointer-sized value and returns it as an address in the
// target. The width is that of the calling process.
func (r *Reader) PeekPointer(addr process.ProcessMemoryAddress) (process.ProcessMemoryAddress, error) {
	ptr, err := PeekValue[uintptr](r, addr)
	if err != nil {
		return 0, err
	}
	return process.ProcessMemoryAddress(ptr), nil
}
