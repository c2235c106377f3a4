// Package packing converts vector samples to and from their packed binary layouts.
//
// # Layouts
//
//	Format       Components  Bits/component     Bytes  Encoding
//	Vector4_128  x,y,z,w     32 (float)         16     raw IEEE 754
//	Vector4_64   x,y,z,w     16                 8      one 2-byte unit per component
//	Vector4_32   x,y,z,w     8                  4      one byte per component
//	Vector3_96   x,y,z       32 (float)         12     raw IEEE 754
//	Vector3_72   x,y,z       24                 9      3 bytes per component, MSB first
//	Vector3_48   x,y,z       16                 6      one 2-byte unit per component
//	Vector3_32   x,y,z       X+Y+Z == 32        4      (x<<(Y+Z))|(y<<Z)|z as hi/lo 2-byte units
//	Vector3_24   x,y,z       8                  3      one byte per component
//	variable     x,y,z       X+Y+Z <= 64        8      (x<<(Y+Z))|(y<<Z)|z as one 8-byte word
//
// 2-byte units, 8-byte words and raw floats use the host's native byte order
// for the package-level functions and the pinned order of a Codec. Streaming
// variants (UnpackVec3x96Stream, UnpackVec3x72Stream, UnpackVec3NStream) read
// big-endian bit streams at arbitrary bit offsets.
//
// # Contracts
//
// Pack functions never allocate and write exactly the bytes of their layout
// at the start of out. Every precondition violation (bad bit widths, values
// outside [0, 1] or [-1, 1], short buffers) is returned as an error; nothing is
// clamped. All functions are pure and may run concurrently on disjoint buffers.
package packing
