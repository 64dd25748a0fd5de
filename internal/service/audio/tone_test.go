package audio

import (
	"encoding/binary"
	"testing"
)

func TestFallbackToneIsDecodableWAV(t *testing.T) {
	tone, err := FallbackTone()
	if err != nil {
		t.Fatalf("FallbackTone err: %v", err)
	}
	if len(tone) <= 44 {
		t.Fatalf("tone too short: %d bytes", len(tone))
	}

	if string(tone[0:4]) != "RIFF" || string(tone[8:12]) != "WAVE" {
		t.Fatalf("missing RIFF/WAVE header")
	}

	sampleRate := binary.LittleEndian.Uint32(tone[24:28])
	if sampleRate != toneSampleRate {
		t.Fatalf("expected sample rate %d, got %d", toneSampleRate, sampleRate)
	}

	dataSize := binary.LittleEndian.Uint32(tone[40:44])
	if int(dataSize) != len(tone)-44 {
		t.Fatalf("data chunk size %d does not match payload %d", dataSize, len(tone)-44)
	}

	// The tone must not be silence.
	allZero := true
	for _, b := range tone[44:] {
		if b != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		t.Fatalf("tone payload is silent")
	}
}
