package audio

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"testing"
)

func TestDecodeFrameBinaryRoundTrip(t *testing.T) {
	payload := make([]byte, 100)
	for i := range payload {
		payload[i] = byte(i)
	}

	unit := DecodeFrame(true, payload)
	if unit.Placeholder {
		t.Fatalf("binary frame must not be a placeholder")
	}
	if len(unit.Data) != len(payload) {
		t.Fatalf("expected %d bytes, got %d", len(payload), len(unit.Data))
	}
	if !bytes.Equal(unit.Data, payload) {
		t.Fatalf("decoded data differs from payload")
	}
}

func TestDecodeFrameJSONAudioRoundTrip(t *testing.T) {
	original := []byte("pcm-bytes-here")
	frame, err := json.Marshal(map[string]any{
		"audio": base64.StdEncoding.EncodeToString(original),
		"other": "ignored",
	})
	if err != nil {
		t.Fatalf("marshal err: %v", err)
	}

	unit := DecodeFrame(false, frame)
	if unit.Placeholder {
		t.Fatalf("valid JSON audio must not be a placeholder")
	}
	if !bytes.Equal(unit.Data, original) {
		t.Fatalf("expected %q, got %q", original, unit.Data)
	}
}

func TestDecodeFrameMalformedJSONYieldsPlaceholder(t *testing.T) {
	unit := DecodeFrame(false, []byte("{not json"))
	if !unit.Placeholder {
		t.Fatalf("expected placeholder for malformed JSON")
	}
	if len(unit.Data) == 0 {
		t.Fatalf("placeholder data must not be empty")
	}
}

func TestDecodeFrameMissingAudioKeyYieldsPlaceholder(t *testing.T) {
	unit := DecodeFrame(false, []byte(`{"text":"hello"}`))
	if !unit.Placeholder {
		t.Fatalf("expected placeholder when audio key is missing")
	}
}

func TestDecodeFrameBadBase64YieldsPlaceholder(t *testing.T) {
	unit := DecodeFrame(false, []byte(`{"audio":"%%%not-base64%%%"}`))
	if !unit.Placeholder {
		t.Fatalf("expected placeholder for invalid base64")
	}
}

func TestEstimateDuration(t *testing.T) {
	// One second of 16kHz mono PCM16.
	d := EstimateDuration(make([]byte, 32000))
	if d.Seconds() < 0.99 || d.Seconds() > 1.01 {
		t.Fatalf("expected ~1s, got %v", d)
	}
	if EstimateDuration(nil) != 0 {
		t.Fatalf("empty buffer should have zero duration")
	}
}
