package chat

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	analysis "github.com/zhouzirui/emovoice/backend/internal/analysis/emotion"
	chatmodel "github.com/zhouzirui/emovoice/backend/internal/model/chat"
)

// Generator produces emotion-adapted replies. The primary path runs an
// eino chain over the configured chat model; every failure falls back to
// the emotion-keyed reply table, so Generate always returns usable text.
type Generator struct {
	chain compose.Runnable[map[string]any, *schema.Message]

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator builds the generation chain. chatModel may be nil, in
// which case the generator serves fallback replies only. rng may be nil
// to seed from the clock; tests inject a fixed seed for determinism.
func NewGenerator(ctx context.Context, chatModel model.ChatModel, rng *rand.Rand) (*Generator, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	g := &Generator{rng: rng}
	if chatModel == nil {
		return g, nil
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	g.chain = runnable
	return g, nil
}

// Adapted reports whether the primary generation path is available.
func (g *Generator) Adapted() bool {
	return g != nil && g.chain != nil
}

// Generate returns (replyText, adapted). adapted is true only when the
// reply came from the primary model; any failure yields a fallback reply
// with adapted=false. The returned text is never empty.
func (g *Generator) Generate(ctx context.Context, text string, label analysis.Label, confidence float64, history []chatmodel.Turn) (string, bool) {
	if g.chain == nil {
		return g.fallbackReply(label), false
	}

	query := text
	if contextBlock := BuildContext(history); contextBlock != "" {
		query = contextBlock + "\n\nUser: " + text
	}

	input := map[string]any{
		"system": buildSystemPrompt(label, confidence),
		"query":  query,
	}

	msg, err := g.chain.Invoke(ctx, input)
	if err != nil {
		log.Printf("[generator] chain invoke failed, using fallback: %v", err)
		return g.fallbackReply(label), false
	}

	reply := strings.TrimSpace(msg.Content)
	if reply == "" {
		log.Printf("[generator] model returned empty reply, using fallback")
		return g.fallbackReply(label), false
	}

	return reply, true
}

func (g *Generator) fallbackReply(label analysis.Label) string {
	replies, ok := fallbackReplies[label]
	if !ok || len(replies) == 0 {
		return defaultFallbackReply
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return replies[g.rng.Intn(len(replies))]
}

// Summary aggregates conversation history statistics.
type Summary struct {
	TotalTurns        int            `json:"total_turns"`
	DominantEmotion   analysis.Label `json:"dominant_emotion,omitempty"`
	AverageConfidence float64        `json:"average_confidence"`
}

// Summarize reports the turn count, the most frequent user emotion
// (first encountered wins ties) and the mean confidence, with turns
// lacking a confidence counted as zero.
func Summarize(history []chatmodel.Turn) Summary {
	summary := Summary{TotalTurns: len(history)}
	if len(history) == 0 {
		return summary
	}

	counts := make(map[analysis.Label]int)
	var confidenceSum float64
	bestCount := 0

	for _, turn := range history {
		confidenceSum += turn.Confidence
		if turn.Speaker != chatmodel.SpeakerUser || turn.Emotion == "" {
			continue
		}
		counts[turn.Emotion]++
		// Strict greater keeps the first-encountered label on ties.
		if counts[turn.Emotion] > bestCount {
			bestCount = counts[turn.Emotion]
			summary.DominantEmotion = turn.Emotion
		}
	}

	summary.AverageConfidence = confidenceSum / float64(len(history))
	return summary
}
