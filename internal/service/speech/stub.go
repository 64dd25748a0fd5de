package speech

import (
	"context"
	"math/rand"
	"sync"

	analysis "github.com/zhouzirui/emovoice/backend/internal/analysis/emotion"
	"github.com/zhouzirui/emovoice/backend/internal/service/audio"
)

// 空实现返回的候选文本，来自开发期的演示语料。
var stubTranscripts = []string{
	"Hello, how's the weather today?",
	"I feel a bit tired",
	"I'm very happy today",
	"I want to chat with you",
	"Thank you for your help",
}

// StubTranscriber 是显式构造的空实现：无识别凭证时在启动阶段注入。
type StubTranscriber struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewStubTranscriber 创建空实现识别器。rng 为空时使用固定种子。
func NewStubTranscriber(rng *rand.Rand) *StubTranscriber {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &StubTranscriber{rng: rng}
}

func (t *StubTranscriber) Transcribe(_ context.Context, _ []byte) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return stubTranscripts[t.rng.Intn(len(stubTranscripts))], nil
}

// StubSynthesizer 是显式构造的空实现：无合成凭证时返回本地音频。
type StubSynthesizer struct{}

// NewStubSynthesizer 创建空实现合成器。
func NewStubSynthesizer() *StubSynthesizer {
	return &StubSynthesizer{}
}

func (s *StubSynthesizer) Synthesize(_ context.Context, text string, _ analysis.Label) ([]byte, error) {
	if text == "" {
		return []byte{}, nil
	}
	return audio.FallbackTone()
}
