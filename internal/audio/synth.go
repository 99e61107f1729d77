// Package audio plays short procedurally generated sound effects.
package audio

import (
	"math"
)

const (
	SampleRate    = 44100
	ChannelCount  = 2
	bytesPerFrame = 8 // Stereo float32
)

// Effect identifies a sound effect.
type Effect int

const (
	EffectFlap Effect = iota
	EffectPoint
	EffectCrash
)

func (e Effect) String() string {
	switch e {
	case EffectFlap:
		return "flap"
	case EffectPoint:
		return "point"
	case EffectCrash:
		return "crash"
	default:
		return "unknown"
	}
}

// Generate renders an effect as stereo float32 little-endian samples.
// Unknown effects render to nil.
func Generate(e Effect) []byte {
	switch e {
	case EffectFlap:
		return genFlap()
	case EffectPoint:
		return genPoint()
	case EffectCrash:
		return genCrash()
	}
	return nil
}

// genFlap is a short rising chirp.
func genFlap() []byte {
	n := int(0.07 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.05, 0.45, 0.2, 0.3)
		freq := 380 + 520*p
		s := fm(t, freq, 2.0, 1.5*env) * env * 0.4
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genPoint is two bright notes a fifth apart.
func genPoint() []byte {
	n := int(0.16 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		freq := 988.0
		if p >= 0.4 {
			freq = 1319.0
		}
		env := adsr(p, 0.02, 0.3, 0.5, 0.3)
		s := math.Sin(2*math.Pi*freq*t) * env * 0.35
		s += math.Sin(2*math.Pi*freq*2*t) * env * 0.05
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genCrash is a falling thud with a noise burst.
func genCrash() []byte {
	n := int(0.35 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(0x5eed)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.4, 0.25, 0.4)
		freq := 220 - 160*p
		s := fm(t, freq, 1.5, 3.0*(1-p)) * env * 0.45
		s += lcg(&seed) * env * (1 - p) * 0.25
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for ch := 0; ch < ChannelCount; ch++ {
		off := i*bytesPerFrame + ch*4
		buf[off] = byte(v)
		buf[off+1] = byte(v >> 8)
		buf[off+2] = byte(v >> 16)
		buf[off+3] = byte(v >> 24)
	}
}

// softSat applies gentle saturation instead of hard clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func makeBuf(n int) []byte { return make([]byte, n*bytesPerFrame) }
