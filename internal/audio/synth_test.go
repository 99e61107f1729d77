package audio

import (
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateEffects(t *testing.T) {
	tests := []struct {
		effect Effect
		frames int
	}{
		{EffectFlap, 3087},   // 70ms
		{EffectPoint, 7056},  // 160ms
		{EffectCrash, 15435}, // 350ms
	}

	for _, tc := range tests {
		t.Run(tc.effect.String(), func(t *testing.T) {
			buf := Generate(tc.effect)
			require.Len(t, buf, tc.frames*bytesPerFrame)

			var peak float64
			for off := 0; off < len(buf); off += bytesPerFrame {
				left := math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
				right := math.Float32frombits(binary.LittleEndian.Uint32(buf[off+4:]))
				require.Equal(t, left, right, "channels differ at byte %d", off)
				require.False(t, math.IsNaN(float64(left)))
				require.LessOrEqual(t, math.Abs(float64(left)), 1.0)
				peak = max(peak, math.Abs(float64(left)))
			}
			assert.Greater(t, peak, 0.05, "effect should be audible")
		})
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	assert.Equal(t, Generate(EffectCrash), Generate(EffectCrash))
}

func TestGenerateUnknown(t *testing.T) {
	assert.Nil(t, Generate(Effect(99)))
	assert.Equal(t, "unknown", Effect(99).String())
}

func TestSoundReader(t *testing.T) {
	r := &soundReader{data: []byte{1, 2, 3, 4, 5}}
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, got)

	n, err := r.Read(make([]byte, 4))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestNopPlayer(t *testing.T) {
	var p Player = Nop{}
	assert.NotPanics(t, func() { p.Play(EffectCrash) })
}

func TestADSR(t *testing.T) {
	assert.InDelta(t, 0.5, adsr(0.05, 0.1, 0.2, 0.5, 0.2), 1e-9)
	assert.InDelta(t, 1.0, adsr(0.1, 0.1, 0.2, 0.5, 0.2), 1e-9)
	assert.InDelta(t, 0.5, adsr(0.5, 0.1, 0.2, 0.5, 0.2), 1e-9)
	assert.InDelta(t, 0.0, adsr(1.0, 0.1, 0.2, 0.5, 0.2), 1e-9)
}
