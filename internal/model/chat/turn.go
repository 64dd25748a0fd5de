package chat

import (
	"time"

	"github.com/zhouzirui/emovoice/backend/internal/analysis/emotion"
)

// Speaker identifies which side of the conversation produced a turn.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Turn records one utterance. Immutable once appended to a session.
// Emotion and Confidence are set only for user turns.
type Turn struct {
	Speaker    Speaker       `json:"speaker"`
	Text       string        `json:"text"`
	Emotion    emotion.Label `json:"emotion,omitempty"`
	Confidence float64       `json:"confidence,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
}
