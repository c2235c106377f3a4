package packing

import (
	"bytes"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/vecpack/errs"
	"github.com/arloliu/vecpack/format"
	"github.com/arloliu/vecpack/internal/bitstream"
	"github.com/arloliu/vecpack/scalar"
	"github.com/arloliu/vecpack/vec"
)

const roundTripSamples = 2000

var allFormats = []format.VectorFormat{
	format.Vector4_128, format.Vector4_64, format.Vector4_32,
	format.Vector3_96, format.Vector3_72, format.Vector3_48,
	format.Vector3_32, format.Vector3_24, format.Vector3_Variable,
}

// float32Slack covers the float32 conversion of the reconstructed value.
const float32Slack = 1.0 / (1 << 22)

func stepTol(t *testing.T, bits uint8) float32 {
	t.Helper()
	step, err := scalar.StepSize(bits)
	require.NoError(t, err)

	return float32(step) + float32Slack
}

func randomComponent(rng *rand.Rand, signed bool) float32 {
	f := rng.Float32()
	if signed {
		return f*2 - 1
	}

	return f
}

func randomSample(rng *rand.Rand, components int, signed bool) vec.Vector4 {
	var c [4]float32
	for i := range components {
		c[i] = randomComponent(rng, signed)
	}

	return vec.New(c[0], c[1], c[2], c[3])
}

func requireWithin(t *testing.T, want, got vec.Vector4, tols [4]float32, msgAndArgs ...any) {
	t.Helper()
	for i := range 4 {
		diff := math.Abs(float64(want.Get(i) - got.Get(i)))
		require.LessOrEqual(t, diff, float64(tols[i]), msgAndArgs...)
	}
}

type quantizedCase struct {
	name       string
	components int
	tolBits    [4]uint8
	pack       func(v vec.Vector4, signed bool, out []byte) error
	unpack     func(in []byte, signed bool) (vec.Vector4, error)
	size       int
}

func quantizedCases() []quantizedCase {
	w32 := Widths{X: 11, Y: 11, Z: 10}
	wN := Widths{X: 21, Y: 21, Z: 22}

	return []quantizedCase{
		{
			name: "Vector4_64", components: 4, tolBits: [4]uint8{16, 16, 16, 16}, size: 8,
			pack:   func(v vec.Vector4, s bool, out []byte) error { return PackVec4x64(v, s, out) },
			unpack: UnpackVec4x64,
		},
		{
			name: "Vector4_32", components: 4, tolBits: [4]uint8{8, 8, 8, 8}, size: 4,
			pack:   func(v vec.Vector4, s bool, out []byte) error { return PackVec4x32(v, s, out) },
			unpack: UnpackVec4x32,
		},
		{
			name: "Vector3_72", components: 3, tolBits: [4]uint8{24, 24, 24, 32}, size: 9,
			pack:   func(v vec.Vector4, s bool, out []byte) error { return PackVec3x72(v, s, out) },
			unpack: UnpackVec3x72,
		},
		{
			name: "Vector3_48", components: 3, tolBits: [4]uint8{16, 16, 16, 32}, size: 6,
			pack:   func(v vec.Vector4, s bool, out []byte) error { return PackVec3x48(v, s, out) },
			unpack: UnpackVec3x48,
		},
		{
			name: "Vector3_32", components: 3, tolBits: [4]uint8{11, 11, 10, 32}, size: 4,
			pack: func(v vec.Vector4, s bool, out []byte) error { return PackVec3x32(v, w32, s, out) },
			unpack: func(in []byte, s bool) (vec.Vector4, error) {
				return UnpackVec3x32(in, w32, s)
			},
		},
		{
			name: "Vector3_24", components: 3, tolBits: [4]uint8{8, 8, 8, 32}, size: 3,
			pack:   func(v vec.Vector4, s bool, out []byte) error { return PackVec3x24(v, s, out) },
			unpack: UnpackVec3x24,
		},
		{
			name: "Vector3_Variable", components: 3, tolBits: [4]uint8{21, 21, 22, 32}, size: 8,
			pack: func(v vec.Vector4, s bool, out []byte) error { return PackVec3N(v, wN, s, out) },
			unpack: func(in []byte, s bool) (vec.Vector4, error) {
				return UnpackVec3N(in, wN, s)
			},
		},
	}
}

func TestQuantizedFormats_RoundTrip(t *testing.T) {
	for _, tc := range quantizedCases() {
		for _, signed := range []bool{false, true} {
			t.Run(fmt.Sprintf("%s/signed=%v", tc.name, signed), func(t *testing.T) {
				var tols [4]float32
				for i, bits := range tc.tolBits {
					tols[i] = stepTol(t, bits)
				}

				rng := rand.New(rand.NewSource(int64(tc.size) + 42))
				buf := make([]byte, tc.size)
				for i := range roundTripSamples {
					v := randomSample(rng, tc.components, signed)
					require.NoError(t, tc.pack(v, signed, buf))

					got, err := tc.unpack(buf, signed)
					require.NoError(t, err)
					requireWithin(t, v, got, tols, "sample %d signed=%v", i, signed)
				}
			})
		}
	}
}

func TestQuantizedFormats_Boundaries(t *testing.T) {
	for _, tc := range quantizedCases() {
		t.Run(tc.name, func(t *testing.T) {
			buf := make([]byte, tc.size)
			lo := vec.Splat(0)
			hi := vec.Splat(1)
			if tc.components == 3 {
				hi = vec.New3(1, 1, 1)
			}

			// 0 and 1 unsigned decode to exactly 0 and 1
			require.NoError(t, tc.pack(lo, false, buf))
			got, err := tc.unpack(buf, false)
			require.NoError(t, err)
			require.Equal(t, vec.New(0, 0, 0, 0), got)

			require.NoError(t, tc.pack(hi, false, buf))
			got, err = tc.unpack(buf, false)
			require.NoError(t, err)
			require.Equal(t, hi, got)

			// -1 and 1 signed
			neg := vec.Splat(-1)
			if tc.components == 3 {
				neg = vec.New3(-1, -1, -1)
			}
			require.NoError(t, tc.pack(neg, true, buf))
			got, err = tc.unpack(buf, true)
			require.NoError(t, err)
			require.Equal(t, neg, got)

			require.NoError(t, tc.pack(hi, true, buf))
			got, err = tc.unpack(buf, true)
			require.NoError(t, err)
			require.Equal(t, hi, got)
		})
	}
}

func TestQuantizedFormats_BoundaryBytes(t *testing.T) {
	tests := []struct {
		name string
		size int
		pack func(v vec.Reader, signed bool, out []byte) error
	}{
		{"Vector4_64", 8, PackVec4x64},
		{"Vector4_32", 4, PackVec4x32},
		{"Vector3_72", 9, PackVec3x72},
		{"Vector3_48", 6, PackVec3x48},
		{"Vector3_24", 3, PackVec3x24},
		{"Vector3_32", 4, func(v vec.Reader, s bool, out []byte) error {
			return PackVec3x32(v, Widths{X: 10, Y: 12, Z: 10}, s, out)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, tt.size)

			require.NoError(t, tt.pack(vec.Splat(0), false, buf))
			require.Equal(t, make([]byte, tt.size), buf)

			require.NoError(t, tt.pack(vec.Splat(-1), true, buf))
			require.Equal(t, make([]byte, tt.size), buf)

			require.NoError(t, tt.pack(vec.Splat(1), false, buf))
			require.Equal(t, bytes.Repeat([]byte{0xFF}, tt.size), buf)

			require.NoError(t, tt.pack(vec.Splat(1), true, buf))
			require.Equal(t, bytes.Repeat([]byte{0xFF}, tt.size), buf)
		})
	}
}

func TestLosslessFormats_BitExact(t *testing.T) {
	values := []float32{
		0,
		float32(math.Copysign(0, -1)),
		1,
		-3.5,
		math.MaxFloat32,
		math.SmallestNonzeroFloat32,
		math.Float32frombits(0x007FFFFF), // largest subnormal
		math.Float32frombits(0x80000001), // negative subnormal
		1e-30,
		123456.789,
	}

	buf16 := make([]byte, 16)
	buf12 := make([]byte, 12)

	for i := range values {
		x := values[i]
		y := values[(i+3)%len(values)]
		z := values[(i+5)%len(values)]
		w := values[(i+7)%len(values)]

		require.NoError(t, PackVec4x128(vec.New(x, y, z, w), buf16))
		got4, err := UnpackVec4x128(buf16)
		require.NoError(t, err)
		for c, want := range [4]float32{x, y, z, w} {
			require.Equal(t, math.Float32bits(want), math.Float32bits(got4.Get(c)))
		}

		require.NoError(t, PackVec3x96(vec.New(x, y, z, w), buf12))
		got3, err := UnpackVec3x96(buf12)
		require.NoError(t, err)
		for c, want := range [3]float32{x, y, z} {
			require.Equal(t, math.Float32bits(want), math.Float32bits(got3.Get(c)))
		}
		require.Zero(t, got3.W())
	}
}

func TestLosslessFormats_RandomBits(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	buf := make([]byte, 16)

	for range roundTripSamples {
		var c [4]float32
		for i := range c {
			// skip NaN payloads; any other bit pattern must survive
			for {
				c[i] = math.Float32frombits(rng.Uint32())
				if !math.IsNaN(float64(c[i])) {
					break
				}
			}
		}
		v := vec.New(c[0], c[1], c[2], c[3])

		require.NoError(t, PackVec4x128(v, buf))
		got, err := UnpackVec4x128(buf)
		require.NoError(t, err)
		require.Equal(t, v.Components(), got.Components())
	}
}

func TestPackVec3x24_SignedExample(t *testing.T) {
	v := vec.New3(0.5, -0.5, 0.25)
	out := make([]byte, 3)

	require.NoError(t, PackVec3x24(v, true, out))
	// (v+1)/2*255: 191.25, 63.75 and 159.375 rounded to nearest
	require.Equal(t, []byte{191, 64, 159}, out)

	got, err := UnpackVec3x24(out, true)
	require.NoError(t, err)
	require.True(t, got.NearlyEqual3(v, 1.0/255), "got %v", got.Components())
	require.InDelta(t, 191.0/255*2-1, got.X(), 1e-6)
	require.InDelta(t, 64.0/255*2-1, got.Y(), 1e-6)
	require.InDelta(t, 159.0/255*2-1, got.Z(), 1e-6)
}

func TestPackVec3x32_WidthInvariant(t *testing.T) {
	out := make([]byte, 4)
	v := vec.New3(0.1, 0.2, 0.3)

	err := PackVec3x32(v, Widths{X: 10, Y: 10, Z: 11}, false, out)
	require.ErrorIs(t, err, errs.ErrInvalidWidthSum)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = UnpackVec3x32(out, Widths{X: 10, Y: 10, Z: 11}, false)
	require.ErrorIs(t, err, errs.ErrInvalidWidthSum)

	// sum is 32 but a zero width is still rejected
	err = PackVec3x32(v, Widths{X: 0, Y: 16, Z: 16}, false, out)
	require.ErrorIs(t, err, errs.ErrInvalidBitWidth)

	require.NoError(t, PackVec3x32(v, Widths{X: 1, Y: 1, Z: 30}, false, out))
}

func TestPackVec3x32_Layout(t *testing.T) {
	w := Widths{X: 16, Y: 8, Z: 8}
	v := vec.New3(1, 0, 1) // word 0xFFFF00FF

	be, err := NewCodec(WithBigEndian())
	require.NoError(t, err)
	le, err := NewCodec(WithLittleEndian())
	require.NoError(t, err)

	out := make([]byte, 4)
	require.NoError(t, be.Pack(format.Vector3_32, v, Params{Widths: w}, out))
	require.Equal(t, []byte{0xFF, 0xFF, 0x00, 0xFF}, out)

	require.NoError(t, le.Pack(format.Vector3_32, v, Params{Widths: w}, out))
	require.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0x00}, out)

	got, err := le.Unpack(format.Vector3_32, out, Params{Widths: w})
	require.NoError(t, err)
	require.Equal(t, v, got)
}

func TestWidths_Validate(t *testing.T) {
	tests := []struct {
		name    string
		w       Widths
		wantErr error
	}{
		{name: "widest accepted", w: Widths{X: 32, Y: 16, Z: 16}},
		{name: "one bit each", w: Widths{X: 1, Y: 1, Z: 1}},
		{name: "sum of 65", w: Widths{X: 32, Y: 32, Z: 1}, wantErr: errs.ErrInvalidWidthSum},
		{name: "sum of 96", w: Widths{X: 32, Y: 32, Z: 32}, wantErr: errs.ErrInvalidWidthSum},
		{name: "width of 33 under the sum", w: Widths{X: 33, Y: 1, Z: 1}, wantErr: errs.ErrInvalidBitWidth},
		{name: "zero width", w: Widths{X: 0, Y: 16, Z: 16}, wantErr: errs.ErrInvalidBitWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.w.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPackVec3N_Widths(t *testing.T) {
	out := make([]byte, VariableWordSize)
	v := vec.New3(0.5, 0.5, 0.5)

	t.Run("sum above 64", func(t *testing.T) {
		err := PackVec3N(v, Widths{X: 32, Y: 32, Z: 1}, false, out)
		require.ErrorIs(t, err, errs.ErrInvalidWidthSum)
	})

	t.Run("width above 32", func(t *testing.T) {
		err := PackVec3N(v, Widths{X: 33, Y: 1, Z: 1}, false, out)
		require.ErrorIs(t, err, errs.ErrInvalidBitWidth)
	})

	t.Run("word layout", func(t *testing.T) {
		w := Widths{X: 4, Y: 4, Z: 8}
		codec, err := NewCodec(WithBigEndian())
		require.NoError(t, err)

		require.NoError(t, codec.Pack(format.Vector3_Variable, vec.New3(1, 0, 1), Params{Widths: w}, out))
		require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0xF0, 0xFF}, out)
	})

	t.Run("full 64 bits", func(t *testing.T) {
		w := Widths{X: 32, Y: 16, Z: 16}
		require.NoError(t, PackVec3N(vec.New3(1, 1, 1), w, false, out))
		require.Equal(t, bytes.Repeat([]byte{0xFF}, 8), out)

		got, err := UnpackVec3N(out, w, false)
		require.NoError(t, err)
		require.Equal(t, vec.New3(1, 1, 1), got)
	})

	t.Run("needs a full word", func(t *testing.T) {
		err := PackVec3N(v, Widths{X: 4, Y: 4, Z: 4}, false, out[:2])
		require.ErrorIs(t, err, errs.ErrBufferTooSmall)
	})
}

func TestVariableSize(t *testing.T) {
	size, err := VariableSize(Widths{X: 4, Y: 4, Z: 4})
	require.NoError(t, err)
	require.Equal(t, 2, size)

	size, err = VariableSize(Widths{X: 21, Y: 21, Z: 22})
	require.NoError(t, err)
	require.Equal(t, 8, size)

	_, err = VariableSize(Widths{X: 32, Y: 32, Z: 32})
	require.ErrorIs(t, err, errs.ErrInvalidWidthSum)
}

func TestPack_OutOfRange(t *testing.T) {
	out := make([]byte, 16)

	err := PackVec3x48(vec.New3(0.5, 1.5, 0), false, out)
	require.ErrorIs(t, err, errs.ErrValueOutOfRange)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
	require.Contains(t, err.Error(), "component y")

	err = PackVec4x64(vec.New(0, 0, 0, -0.5), false, out)
	require.ErrorIs(t, err, errs.ErrValueOutOfRange)
	require.Contains(t, err.Error(), "component w")

	err = PackVec3x24(vec.New3(-1.01, 0, 0), true, out)
	require.ErrorIs(t, err, errs.ErrValueOutOfRange)

	err = PackVec3x72(vec.New3(float32(math.NaN()), 0, 0), true, out)
	require.ErrorIs(t, err, errs.ErrValueOutOfRange)
}

func TestPackUnpack_ShortBuffers(t *testing.T) {
	w32 := Widths{X: 11, Y: 11, Z: 10}
	wN := Widths{X: 8, Y: 8, Z: 8}
	v := vec.Splat(0.5)

	codec, err := NewCodec()
	require.NoError(t, err)

	for _, f := range allFormats {
		t.Run(f.String(), func(t *testing.T) {
			params := Params{Widths: w32}
			if f == format.Vector3_Variable {
				params.Widths = wN
			}
			size, err := codec.PackedSize(f, params)
			require.NoError(t, err)

			short := make([]byte, size-1)
			require.ErrorIs(t, codec.Pack(f, v, params, short), errs.ErrBufferTooSmall)

			_, err = codec.Unpack(f, short, params)
			require.ErrorIs(t, err, errs.ErrBufferTooSmall)

			_, err = codec.Unpack(f, nil, params)
			require.ErrorIs(t, err, errs.ErrBufferTooSmall)
		})
	}
}

func TestPack_WritesOnlyItsLayout(t *testing.T) {
	buf := bytes.Repeat([]byte{0xAA}, 20)
	require.NoError(t, PackVec3x48(vec.Splat(0), false, buf))

	require.Equal(t, make([]byte, 6), buf[:6])
	require.Equal(t, bytes.Repeat([]byte{0xAA}, 14), buf[6:])
}

func TestPack_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	codec, err := NewCodec()
	require.NoError(t, err)

	params := Params{Widths: Widths{X: 12, Y: 10, Z: 10}, Signed: true}
	for _, f := range allFormats {
		a := make([]byte, 16)
		b := make([]byte, 16)
		for range 100 {
			v := randomSample(rng, f.NumComponents(), true)
			require.NoError(t, codec.Pack(f, v, params, a))
			require.NoError(t, codec.Pack(f, v, params, b))
			require.Equal(t, a, b, "format %s", f)
		}
	}
}

func TestUnpackVec3x72Stream_MatchesFixed(t *testing.T) {
	rng := rand.New(rand.NewSource(72))
	fixed := make([]byte, 9)

	for range 500 {
		signed := rng.Intn(2) == 1
		v := randomSample(rng, 3, signed)
		require.NoError(t, PackVec3x72(v, signed, fixed))

		want, err := UnpackVec3x72(fixed, signed)
		require.NoError(t, err)

		// byte aligned: the stream reader sees the same bytes
		got, err := UnpackVec3x72Stream(fixed, 0, signed)
		require.NoError(t, err)
		require.Equal(t, want, got)

		// offset 5: x and y fit the first word, z straddles into byte 8
		w := bitstream.NewWriter(16)
		w.WriteBits(0b10110, 5)
		for i := range 3 {
			b := fixed[i*3 : i*3+3]
			w.WriteBits(uint64(b[0])<<16|uint64(b[1])<<8|uint64(b[2]), 24)
		}
		stream := w.Bytes()
		require.Len(t, stream, 10)

		got, err = UnpackVec3x72Stream(stream, 5, signed)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestUnpackVec3x96Stream_MatchesFixed(t *testing.T) {
	be, err := NewCodec(WithBigEndian())
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(96))
	fixed := make([]byte, 12)

	for range 500 {
		v := vec.New3(rng.Float32()*200-100, float32(rng.NormFloat64()), math.Float32frombits(rng.Uint32()&0x007FFFFF))
		require.NoError(t, be.Pack(format.Vector3_96, v, Params{}, fixed))

		got, err := UnpackVec3x96Stream(fixed, 0)
		require.NoError(t, err)
		require.Equal(t, v, got)

		offset := rng.Intn(64)
		w := bitstream.NewWriter(24)
		w.WriteBits(rng.Uint64(), offset)
		for _, c := range [3]float32{v.X(), v.Y(), v.Z()} {
			w.WriteBits(uint64(math.Float32bits(c)), 32)
		}

		got, err = UnpackVec3x96Stream(w.Bytes(), uint64(offset)) //nolint:gosec // 0..63
		require.NoError(t, err)
		require.Equal(t, v, got, "offset %d", offset)
	}

	_, err = UnpackVec3x96Stream(fixed, 1)
	require.ErrorIs(t, err, errs.ErrBufferTooSmall)
}

func TestUnpackVec3NStream_BackToBack(t *testing.T) {
	widthSets := []Widths{
		{X: 21, Y: 21, Z: 22}, // 64 bits, every sample after the first straddles
		{X: 5, Y: 7, Z: 3},
		{X: 32, Y: 1, Z: 31},
		{X: 11, Y: 11, Z: 10},
	}

	rng := rand.New(rand.NewSource(64))
	word := make([]byte, VariableWordSize)

	for _, ws := range widthSets {
		t.Run(ws.String(), func(t *testing.T) {
			const n = 200
			const lead = 3

			signed := ws.X%2 == 1
			want := make([]vec.Vector4, n)
			w := bitstream.NewWriter(n * 8)
			w.WriteBits(0b101, lead)

			for i := range want {
				v := randomSample(rng, 3, signed)
				require.NoError(t, PackVec3N(v, ws, signed, word))

				var err error
				want[i], err = UnpackVec3N(word, ws, signed)
				require.NoError(t, err)

				codes, err := quantize3(v, ws, signed)
				require.NoError(t, err)
				w.WriteBits(ws.compose(codes[0], codes[1], codes[2]), ws.Sum())
			}

			stream := w.Bytes()
			for i := range want {
				offset := uint64(lead + i*ws.Sum()) //nolint:gosec // small
				got, err := UnpackVec3NStream(stream, ws, signed, offset)
				require.NoError(t, err)
				require.Equal(t, want[i], got, "sample %d", i)
			}

			// one sample past the end
			_, err := UnpackVec3NStream(stream, ws, signed, uint64(lead+n*ws.Sum())) //nolint:gosec // small
			require.ErrorIs(t, err, errs.ErrBufferTooSmall)
		})
	}

	_, err := UnpackVec3NStream(word, Widths{X: 30, Y: 30, Z: 30}, false, 0)
	require.ErrorIs(t, err, errs.ErrInvalidWidthSum)
}
