package chat

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	analysis "github.com/zhouzirui/emovoice/backend/internal/analysis/emotion"
	chatmodel "github.com/zhouzirui/emovoice/backend/internal/model/chat"
)

type fakeChatModel struct {
	reply   string
	err     error
	lastIn  []*schema.Message
	binders []*schema.ToolInfo
}

func (f *fakeChatModel) Generate(_ context.Context, in []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.lastIn = in
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported by fake")
}

func (f *fakeChatModel) BindTools(tools []*schema.ToolInfo) error {
	f.binders = tools
	return nil
}

func TestGenerateUsesPrimaryModel(t *testing.T) {
	fake := &fakeChatModel{reply: "  Of course, tell me more.  "}
	g, err := NewGenerator(context.Background(), fake, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("NewGenerator err: %v", err)
	}

	reply, adapted := g.Generate(context.Background(), "I had a rough day", analysis.Sad, 0.9, nil)
	if !adapted {
		t.Fatalf("expected adapted reply")
	}
	if reply != "Of course, tell me more." {
		t.Fatalf("unexpected reply: %q", reply)
	}

	// The system message must carry the emotion directive and adverb.
	if len(fake.lastIn) == 0 {
		t.Fatalf("model received no messages")
	}
	system := fake.lastIn[0].Content
	if !strings.Contains(system, "very sad") {
		t.Fatalf("system prompt missing emotion context: %q", system)
	}
}

func TestGenerateFallsBackOnModelError(t *testing.T) {
	fake := &fakeChatModel{err: errors.New("backend down")}
	g, err := NewGenerator(context.Background(), fake, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("NewGenerator err: %v", err)
	}

	reply, adapted := g.Generate(context.Background(), "hello", analysis.Angry, 0.7, nil)
	if adapted {
		t.Fatalf("expected adapted=false on model failure")
	}
	assertFallbackMember(t, analysis.Angry, reply)
}

func TestGenerateWithoutModelIsAlwaysFallback(t *testing.T) {
	g, err := NewGenerator(context.Background(), nil, rand.New(rand.NewSource(11)))
	if err != nil {
		t.Fatalf("NewGenerator err: %v", err)
	}
	if g.Adapted() {
		t.Fatalf("generator without model must not report adapted")
	}

	for _, label := range analysis.All() {
		reply, adapted := g.Generate(context.Background(), "hi", label, 0.5, nil)
		if adapted {
			t.Fatalf("expected fallback for %s", label)
		}
		if reply == "" {
			t.Fatalf("fallback reply empty for %s", label)
		}
		assertFallbackMember(t, label, reply)
	}
}

func TestGenerateFallbackIsDeterministicWithSeed(t *testing.T) {
	first, _ := NewGenerator(context.Background(), nil, rand.New(rand.NewSource(3)))
	second, _ := NewGenerator(context.Background(), nil, rand.New(rand.NewSource(3)))

	for i := 0; i < 10; i++ {
		r1, _ := first.Generate(context.Background(), "x", analysis.Happy, 0.5, nil)
		r2, _ := second.Generate(context.Background(), "x", analysis.Happy, 0.5, nil)
		if r1 != r2 {
			t.Fatalf("seeded fallback diverged at step %d: %q vs %q", i, r1, r2)
		}
	}
}

func assertFallbackMember(t *testing.T, label analysis.Label, reply string) {
	t.Helper()
	for _, candidate := range FallbackReplies(label) {
		if candidate == reply {
			return
		}
	}
	t.Fatalf("reply %q not in fallback table for %s", reply, label)
}

func TestBuildContextRendersLastFiveUserTurns(t *testing.T) {
	var history []chatmodel.Turn
	for i := 0; i < 8; i++ {
		history = append(history,
			chatmodel.Turn{Speaker: chatmodel.SpeakerUser, Text: userText(i), Emotion: analysis.Neutral, Confidence: 0.5},
			chatmodel.Turn{Speaker: chatmodel.SpeakerAssistant, Text: "reply"},
		)
	}

	rendered := BuildContext(history)
	if !strings.HasPrefix(rendered, "Recent conversation history:") {
		t.Fatalf("missing header: %q", rendered)
	}
	if strings.Contains(rendered, userText(2)) {
		t.Fatalf("context should only keep the last 5 user turns")
	}
	for i := 3; i < 8; i++ {
		if !strings.Contains(rendered, userText(i)) {
			t.Fatalf("context missing turn %d: %q", i, rendered)
		}
	}
	if strings.Contains(rendered, "assistant:") {
		t.Fatalf("assistant turns must not appear in context")
	}
	if !strings.Contains(rendered, "(neutral, 0.50)") {
		t.Fatalf("context missing emotion annotation: %q", rendered)
	}
}

func userText(i int) string {
	return "utterance-" + string(rune('a'+i))
}

func TestBuildContextEmptyHistory(t *testing.T) {
	if got := BuildContext(nil); got != "" {
		t.Fatalf("expected empty context, got %q", got)
	}
}

func TestConfidenceAdverbLevels(t *testing.T) {
	cases := []struct {
		confidence float64
		want       string
	}{
		{0.95, "very"},
		{0.81, "very"},
		{0.8, "quite"},
		{0.61, "quite"},
		{0.6, "slightly"},
		{0.1, "slightly"},
	}
	for _, tc := range cases {
		if got := confidenceAdverb(tc.confidence); got != tc.want {
			t.Fatalf("confidence %.2f: expected %s, got %s", tc.confidence, tc.want, got)
		}
	}
}

func TestSummarize(t *testing.T) {
	history := []chatmodel.Turn{
		{Speaker: chatmodel.SpeakerUser, Text: "a", Emotion: analysis.Happy, Confidence: 0.8},
		{Speaker: chatmodel.SpeakerAssistant, Text: "b"},
		{Speaker: chatmodel.SpeakerUser, Text: "c", Emotion: analysis.Sad, Confidence: 0.6},
		{Speaker: chatmodel.SpeakerAssistant, Text: "d"},
	}

	summary := Summarize(history)
	if summary.TotalTurns != 4 {
		t.Fatalf("expected 4 turns, got %d", summary.TotalTurns)
	}
	// happy and sad each occur once; happy was encountered first.
	if summary.DominantEmotion != analysis.Happy {
		t.Fatalf("expected happy as dominant, got %s", summary.DominantEmotion)
	}
	// Assistant turns lack confidence and count as zero.
	want := (0.8 + 0.6) / 4
	if diff := summary.AverageConfidence - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected average %.3f, got %.3f", want, summary.AverageConfidence)
	}
}

func TestSummarizeEmptyHistory(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalTurns != 0 || summary.DominantEmotion != "" || summary.AverageConfidence != 0 {
		t.Fatalf("unexpected summary for empty history: %+v", summary)
	}
}
