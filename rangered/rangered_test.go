package rangered

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/vecpack/endian"
	"github.com/arloliu/vecpack/errs"
	"github.com/arloliu/vecpack/format"
	"github.com/arloliu/vecpack/scalar"
	"github.com/arloliu/vecpack/vec"
)

func randomTrack(rng *rand.Rand, n int) []vec.Vector4 {
	samples := make([]vec.Vector4, n)
	for i := range samples {
		samples[i] = vec.New(
			rng.Float32()*20-10,
			rng.Float32()*2+100,
			float32(rng.NormFloat64()),
			rng.Float32(), // w is ignored
		)
	}

	return samples
}

func TestFromSamples(t *testing.T) {
	r, err := FromSamples([]vec.Vector4{
		vec.New(1, -2, 3, 9),
		vec.New(-1, 4, 3, -9),
		vec.New(0.5, 0, 3, 0),
	})
	require.NoError(t, err)
	require.Equal(t, vec.New3(-1, -2, 3), r.Min)
	require.Equal(t, vec.New3(2, 6, 0), r.Extent)
	require.Equal(t, vec.New3(1, 4, 3), r.Max())

	_, err = FromSamples(nil)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = FromSamples([]vec.Vector4{vec.New3(0, float32(math.NaN()), 0)})
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestRange_NormalizeBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	samples := randomTrack(rng, 500)

	r, err := FromSamples(samples)
	require.NoError(t, err)

	for _, s := range samples {
		n := r.Normalize(s)
		for i := range 3 {
			require.GreaterOrEqual(t, n.Get(i), float32(0))
			require.LessOrEqual(t, n.Get(i), float32(1))
		}
		require.Zero(t, n.W())

		// every normalized sample is a valid quantizer input
		_, err := scalar.PackUnsigned(n.X(), 16)
		require.NoError(t, err)
	}

	require.Equal(t, vec.New3(0, 0, 0), r.Normalize(r.Min))
	require.True(t, r.Normalize(r.Max()).NearlyEqual3(vec.New3(1, 1, 1), 1e-5))
}

func TestRange_NormalizeDenormalizeInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	samples := randomTrack(rng, 500)

	r, err := FromSamples(samples)
	require.NoError(t, err)

	for _, s := range samples {
		back := r.Denormalize(r.Normalize(s))
		require.True(t, back.NearlyEqual3(s, 1e-4), "want %v got %v", s.Components(), back.Components())
		require.Zero(t, back.W())
	}
}

func TestRange_ZeroExtent(t *testing.T) {
	r, err := FromSamples([]vec.Vector4{vec.New3(5, 1, 2), vec.New3(5, 3, 2)})
	require.NoError(t, err)

	n := r.Normalize(vec.New3(5, 2, 2))
	require.Equal(t, vec.New3(0, 0.5, 0), n)
	require.True(t, n.IsFinite())

	require.Equal(t, vec.New3(5, 2, 2), r.Denormalize(n))
}

func TestRange_MarshalParse(t *testing.T) {
	r := Range{Min: vec.New3(1, -2.5, 1e-20), Extent: vec.New3(0, 3.25, 42)}

	for _, engine := range []endian.EndianEngine{endian.GetLittleEndianEngine(), endian.GetBigEndianEngine()} {
		buf := make([]byte, format.RangeReductionVectorSize())
		require.NoError(t, r.MarshalTo(buf, engine))

		got, err := ParseRange(buf, engine)
		require.NoError(t, err)
		require.Equal(t, r, got)
	}

	buf := make([]byte, 24)
	require.NoError(t, r.MarshalTo(buf, endian.GetBigEndianEngine()))
	assert.Equal(t, []byte{0x3F, 0x80, 0x00, 0x00}, buf[0:4])   // min x = 1.0
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x00}, buf[12:16]) // extent x = 0

	require.ErrorIs(t, r.MarshalTo(buf[:23], endian.GetNativeEngine()), errs.ErrBufferTooSmall)
	_, err := ParseRange(buf[:10], endian.GetNativeEngine())
	require.ErrorIs(t, err, errs.ErrBufferTooSmall)
}

func TestNewSegmentConfig(t *testing.T) {
	cfg, err := NewSegmentConfig()
	require.NoError(t, err)
	require.Equal(t, uint8(DefaultComponentBits), cfg.ComponentBits())
	require.Equal(t, 6, cfg.SegmentMetadataSize())

	cfg, err = NewSegmentConfig(WithComponentBits(16))
	require.NoError(t, err)
	require.Equal(t, uint8(16), cfg.ComponentBits())
	require.Equal(t, 12, cfg.SegmentMetadataSize())

	for _, bits := range []uint8{0, 4, 12, 24, 32} {
		_, err = NewSegmentConfig(WithComponentBits(bits))
		require.ErrorIs(t, err, errs.ErrInvalidOption, "bits=%d", bits)
	}
}

func TestPackSegmentRange_Layout(t *testing.T) {
	cfg, err := NewSegmentConfig()
	require.NoError(t, err)

	clip := Range{Min: vec.New3(0, 0, 0), Extent: vec.New3(1, 1, 1)}
	segment := Range{Min: vec.New3(0.5, 0.5, 0.5), Extent: vec.New3(0.25, 0.25, 0.25)}

	out := make([]byte, cfg.SegmentMetadataSize())
	require.NoError(t, cfg.PackSegmentRange(segment, clip, out, endian.GetNativeEngine()))

	// min 0.5 rounds down to 127/255, max 0.75 needs an extent rounded up to 65/255
	require.Equal(t, []byte{127, 127, 127, 65, 65, 65}, out)

	got, err := cfg.UnpackSegmentRange(out, clip, endian.GetNativeEngine())
	require.NoError(t, err)
	require.InDelta(t, 127.0/255, got.Min.X(), 1e-6)
	require.InDelta(t, 65.0/255, got.Extent.Y(), 1e-6)
}

func TestPackSegmentRange_Containment(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	samples := randomTrack(rng, 1024)

	clip, err := FromSamples(samples)
	require.NoError(t, err)

	const segmentLen = 16

	for _, bits := range []uint8{8, 16} {
		cfg, err := NewSegmentConfig(WithComponentBits(bits))
		require.NoError(t, err)

		step, err := scalar.StepSize(bits)
		require.NoError(t, err)

		for _, engine := range []endian.EndianEngine{endian.GetLittleEndianEngine(), endian.GetBigEndianEngine()} {
			buf := make([]byte, cfg.SegmentMetadataSize())

			for start := 0; start < len(samples); start += segmentLen {
				segSamples := samples[start : start+segmentLen]
				segment, err := FromSamples(segSamples)
				require.NoError(t, err)

				require.NoError(t, cfg.PackSegmentRange(segment, clip, buf, engine))
				got, err := cfg.UnpackSegmentRange(buf, clip, engine)
				require.NoError(t, err)

				for i := range 3 {
					ext := float64(clip.Extent.Get(i))
					eps := 1e-5 * (math.Abs(float64(clip.Min.Get(i))) + ext + 1)
					tol := step*ext + eps

					gotMin := float64(got.Min.Get(i))
					gotMax := float64(got.Max().Get(i))
					wantMin := float64(segment.Min.Get(i))
					wantMax := float64(segment.Max().Get(i))

					require.LessOrEqual(t, gotMin, wantMin+eps, "bits=%d component %d", bits, i)
					require.GreaterOrEqual(t, gotMax, wantMax-eps, "bits=%d component %d", bits, i)
					require.InDelta(t, wantMin, gotMin, tol)
					require.InDelta(t, wantMax, gotMax, tol)
				}
			}
		}
	}
}

func TestPackSegmentRange_Errors(t *testing.T) {
	cfg, err := NewSegmentConfig(WithComponentBits(16))
	require.NoError(t, err)

	clip := Range{Min: vec.New3(0, 0, 0), Extent: vec.New3(1, 1, 1)}

	t.Run("segment outside clip", func(t *testing.T) {
		segment := Range{Min: vec.New3(0.5, 0.5, 0.5), Extent: vec.New3(0.25, 0.75, 0.25)}
		err := cfg.PackSegmentRange(segment, clip, make([]byte, 12), endian.GetNativeEngine())
		require.ErrorIs(t, err, errs.ErrValueOutOfRange)
	})

	t.Run("short buffers", func(t *testing.T) {
		err := cfg.PackSegmentRange(clip, clip, make([]byte, 11), endian.GetNativeEngine())
		require.ErrorIs(t, err, errs.ErrBufferTooSmall)

		_, err = cfg.UnpackSegmentRange(make([]byte, 6), clip, endian.GetNativeEngine())
		require.ErrorIs(t, err, errs.ErrBufferTooSmall)
	})

	t.Run("whole clip", func(t *testing.T) {
		buf := make([]byte, 12)
		require.NoError(t, cfg.PackSegmentRange(clip, clip, buf, endian.GetNativeEngine()))

		got, err := cfg.UnpackSegmentRange(buf, clip, endian.GetNativeEngine())
		require.NoError(t, err)
		require.Equal(t, clip, got)
	})
}
