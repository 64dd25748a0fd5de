package speech

import (
	"context"

	analysis "github.com/zhouzirui/emovoice/backend/internal/analysis/emotion"
)

// Transcriber 抽象语音转文本能力。返回 UTF-8 文本，静音可返回空串。
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Synthesizer 抽象文本转语音能力。hint 为情绪提示，实现可以忽略。
// 成功时返回的字节可以为空（表示无音频），但不会是nil语义上的缺失。
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, hint analysis.Label) ([]byte, error)
}
