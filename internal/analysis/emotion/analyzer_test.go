package emotion

import (
	"encoding/binary"
	"math"
	"testing"
)

func pcmFromSamples(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(s))
	}
	return buf
}

func sineSamples(n int, amplitude float64, period int) []int16 {
	samples := make([]int16, n)
	for i := range samples {
		samples[i] = int16(amplitude * 32767 * math.Sin(2*math.Pi*float64(i)/float64(period)))
	}
	return samples
}

func TestAnalyzeEmptyInputIsNeutral(t *testing.T) {
	d := Analyze(nil)
	if d.Emotion != Neutral {
		t.Fatalf("expected neutral, got %s", d.Emotion)
	}
	if d.Confidence != 0.5 {
		t.Fatalf("expected confidence 0.5, got %f", d.Confidence)
	}
}

func TestAnalyzeAlwaysReturnsKnownLabel(t *testing.T) {
	known := make(map[Label]struct{})
	for _, l := range All() {
		known[l] = struct{}{}
	}

	inputs := [][]byte{
		nil,
		make([]byte, 100), // silence
		pcmFromSamples(sineSamples(1000, 0.9, 4)),
		pcmFromSamples(sineSamples(1000, 0.9, 200)),
		pcmFromSamples(sineSamples(1000, 0.2, 50)),
		pcmFromSamples(sineSamples(1000, 0.08, 3)),
		pcmFromSamples(sineSamples(1000, 0.02, 3)),
		{0x01}, // odd length, below one sample after truncation
	}

	for i, in := range inputs {
		d := Analyze(in)
		if _, ok := known[d.Emotion]; !ok {
			t.Fatalf("input %d: unknown label %q", i, d.Emotion)
		}
		if d.Confidence < 0 || d.Confidence > 1 {
			t.Fatalf("input %d: confidence out of range: %f", i, d.Confidence)
		}
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	in := pcmFromSamples(sineSamples(500, 0.4, 16))
	first := Analyze(in)
	for i := 0; i < 5; i++ {
		if got := Analyze(in); got != first {
			t.Fatalf("analysis not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestAnalyzeSilenceLeansSad(t *testing.T) {
	d := Analyze(make([]byte, 200))
	if d.Emotion != Sad {
		t.Fatalf("expected sad for silence, got %s", d.Emotion)
	}
}

func TestParseLabel(t *testing.T) {
	if _, ok := ParseLabel("joyful"); ok {
		t.Fatalf("expected unknown label to fail")
	}
	label, ok := ParseLabel("  HAPPY ")
	if !ok || label != Happy {
		t.Fatalf("expected happy, got %q ok=%v", label, ok)
	}
}
