package emotion

import (
	"context"
	"math/rand"
	"testing"

	analysis "github.com/zhouzirui/emovoice/backend/internal/analysis/emotion"
)

func TestAcousticClassifierNeverErrors(t *testing.T) {
	c := NewAcousticClassifier()
	for _, audio := range [][]byte{nil, make([]byte, 100), []byte("not-audio")} {
		label, confidence, err := c.Classify(context.Background(), audio)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := analysis.ParseLabel(string(label)); !ok {
			t.Fatalf("unknown label %q", label)
		}
		if confidence < 0 || confidence > 1 {
			t.Fatalf("confidence out of range: %f", confidence)
		}
	}
}

func TestStubClassifierStaysInContract(t *testing.T) {
	c := NewStubClassifier(rand.New(rand.NewSource(42)))
	for i := 0; i < 20; i++ {
		label, confidence, err := c.Classify(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := analysis.ParseLabel(string(label)); !ok {
			t.Fatalf("unknown label %q", label)
		}
		if confidence < 0.6 || confidence >= 0.9 {
			t.Fatalf("confidence outside stub range: %f", confidence)
		}
	}
}

func TestStubClassifierDefaultSeedIsDeterministic(t *testing.T) {
	first := NewStubClassifier(nil)
	second := NewStubClassifier(nil)
	for i := 0; i < 10; i++ {
		l1, c1, _ := first.Classify(context.Background(), nil)
		l2, c2, _ := second.Classify(context.Background(), nil)
		if l1 != l2 || c1 != c2 {
			t.Fatalf("default-seeded stubs diverged at step %d", i)
		}
	}
}
