// Package main builds the blackboard as a C shared library, for hosts that
// load it through a C ABI (for example a Python control panel using ctypes):
//
//	go build -buildmode=c-shared -o libblackboard.so ./cmd/libblackboard
//
// Exported functions:
//
//	int   bbGetInt(const char* key, int defaultValue);
//	int   bbSetInt(const char* key, int value);
//	float bbGetFloat(const char* key, float defaultValue);
//	int   bbSetFloat(const char* key, float value);
//	void  bbGetVec3(const char* key, float* x, float* y, float* z);
//	int   bbSetVec3(const char* key, float x, float y, float z);
//
// bbGetVec3 reads the default from *x, *y, *z and writes the result back.
// Setters return 0 on success and -1 when the key is rejected. NULL keys and
// keys that are not valid UTF-8 are rejected and logged to stderr.
package main

// #include <stddef.h>
import "C"

import (
	"log/slog"
	"os"

	"github.com/oshokin/blackboard/blackboard"
)

//nolint:gochecknoglobals // a shared library has no other place to keep its logger.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

// goKey copies a C string into Go memory. NULL maps to nil.
func goKey(key *C.char) *string {
	if key == nil {
		return nil
	}

	k := C.GoString(key)

	return &k
}

//export bbGetInt
func bbGetInt(key *C.char, defaultValue C.int) C.int {
	return C.int(getInt(logger, goKey(key), int32(defaultValue)))
}

//export bbSetInt
func bbSetInt(key *C.char, value C.int) C.int {
	return C.int(setInt(logger, goKey(key), int32(value)))
}

//export bbGetFloat
func bbGetFloat(key *C.char, defaultValue C.float) C.float {
	return C.float(getFloat(logger, goKey(key), float32(defaultValue)))
}

//export bbSetFloat
func bbSetFloat(key *C.char, value C.float) C.int {
	return C.int(setFloat(logger, goKey(key), float32(value)))
}

//export bbGetVec3
func bbGetVec3(key *C.char, x, y, z *C.float) {
	getVec3Into(logger, goKey(key), (*float32)(x), (*float32)(y), (*float32)(z))
}

//export bbSetVec3
func bbSetVec3(key *C.char, x, y, z C.float) C.int {
	return C.int(setVec3(logger, goKey(key), blackboard.Vec3{float32(x), float32(y), float32(z)}))
}

func main() {}
