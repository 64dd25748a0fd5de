package chat

import (
	analysis "github.com/zhouzirui/emovoice/backend/internal/analysis/emotion"
)

// 生成失败时按情绪选取的兜底回复。
var fallbackReplies = map[analysis.Label][]string{
	analysis.Happy: {
		"It sounds like you're in a good mood! Is there anything happy you'd like to share?",
		"I'm glad to see you so happy! Keep up this good mood!",
		"Your good mood is contagious! What interesting things are happening?",
	},
	analysis.Sad: {
		"I sense you might be feeling a bit down. Would you like to talk? I'm here to listen.",
		"Everyone has low moments, and that's completely normal. Would you like to share with me?",
		"I understand how you're feeling right now. If you need anything, I'm always here to support you.",
	},
	analysis.Angry: {
		"I sense you're a bit angry. Take a deep breath and tell me slowly, okay?",
		"Anger is a normal emotion, but we can work together to calm down.",
		"I understand your feelings. Let's find a solution together.",
	},
	analysis.Fear: {
		"I sense you're a bit scared. It's okay, I'm here with you.",
		"Fear is a natural response. Would you like to tell me what happened?",
		"I'll always be here to support you. You're not alone.",
	},
	analysis.Surprise: {
		"Wow! That sounds really surprising! Can you tell me what happened?",
		"That's really unexpected! Your reaction is adorable.",
		"I didn't expect something like this to happen!",
	},
	analysis.Disgust: {
		"I understand your feelings. Some things are indeed uncomfortable.",
		"Your reaction is normal. When we encounter things we don't like, this is how we feel.",
		"I understand your thoughts. Everyone has their own preferences.",
	},
	analysis.Neutral: {
		"I'm here to listen. What would you like to talk about?",
		"Okay, I understand. Is there anything else you'd like to say?",
		"Hmm, I understand what you mean.",
	},
	analysis.Excited: {
		"Wow! You seem really excited! What good things happened?",
		"Your excitement is contagious! Can you share with me?",
		"That's amazing! Your enthusiasm makes me happy too!",
	},
}

const defaultFallbackReply = "I understand your feelings."

// FallbackReplies 返回该情绪的兜底回复列表，供测试校验成员关系。
func FallbackReplies(label analysis.Label) []string {
	replies, ok := fallbackReplies[label]
	if !ok {
		return []string{defaultFallbackReply}
	}
	out := make([]string, len(replies))
	copy(out, replies)
	return out
}
