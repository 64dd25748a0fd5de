package chat

import "github.com/zhouzirui/emovoice/backend/internal/analysis/emotion"

// PipelineResult packages the outcome of one pipeline pass. ReplyText is
// always non-empty: every stage failure is absorbed into a fallback value
// before the result is assembled.
type PipelineResult struct {
	UserText   string
	ReplyText  string
	Emotion    emotion.Label
	Confidence float64
	Audio      []byte
	Adapted    bool
}
