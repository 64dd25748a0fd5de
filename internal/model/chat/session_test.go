package chat

import (
	"fmt"
	"testing"

	"github.com/zhouzirui/emovoice/backend/internal/analysis/emotion"
)

func TestAppendTurnBoundsHistory(t *testing.T) {
	s := NewSession("s1")
	for i := 0; i < MaxHistory*3; i++ {
		s.AppendTurn(Turn{Speaker: SpeakerUser, Text: fmt.Sprintf("turn-%d", i)})
		if len(s.History) > MaxHistory {
			t.Fatalf("history exceeded cap after %d turns: %d", i+1, len(s.History))
		}
	}

	if len(s.History) != MaxHistory {
		t.Fatalf("expected %d turns, got %d", MaxHistory, len(s.History))
	}

	// Oldest entries must be evicted first.
	if s.History[0].Text != fmt.Sprintf("turn-%d", MaxHistory*3-MaxHistory) {
		t.Fatalf("unexpected oldest turn: %s", s.History[0].Text)
	}
	if s.History[MaxHistory-1].Text != fmt.Sprintf("turn-%d", MaxHistory*3-1) {
		t.Fatalf("unexpected newest turn: %s", s.History[MaxHistory-1].Text)
	}
}

func TestAppendTurnPreservesInsertionOrder(t *testing.T) {
	s := NewSession("s2")
	s.AppendTurn(Turn{Speaker: SpeakerUser, Text: "I feel great", Emotion: emotion.Happy, Confidence: 0.8})
	s.AppendTurn(Turn{Speaker: SpeakerAssistant, Text: "Glad to hear it!"})
	s.AppendTurn(Turn{Speaker: SpeakerUser, Text: "actually I'm sad", Emotion: emotion.Sad, Confidence: 0.7})
	s.AppendTurn(Turn{Speaker: SpeakerAssistant, Text: "Want to talk about it?"})

	if len(s.History) != 4 {
		t.Fatalf("expected 4 turns, got %d", len(s.History))
	}

	wantSpeakers := []Speaker{SpeakerUser, SpeakerAssistant, SpeakerUser, SpeakerAssistant}
	for i, want := range wantSpeakers {
		if s.History[i].Speaker != want {
			t.Fatalf("turn %d: expected speaker %s, got %s", i, want, s.History[i].Speaker)
		}
	}

	for _, turn := range s.History {
		if turn.CreatedAt.IsZero() {
			t.Fatalf("turn timestamp not set")
		}
	}
}

func TestStateString(t *testing.T) {
	if StateClosed.String() != "closed" || StateOpen.String() != "open" {
		t.Fatalf("unexpected state names: %s %s", StateClosed, StateOpen)
	}
}
