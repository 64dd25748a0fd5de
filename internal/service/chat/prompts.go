package chat

import (
	"fmt"
	"strings"

	analysis "github.com/zhouzirui/emovoice/backend/internal/analysis/emotion"
	chatmodel "github.com/zhouzirui/emovoice/backend/internal/model/chat"
)

// 每种情绪对应的语气指令，拼入系统提示词。
var toneDirectives = map[analysis.Label]string{
	analysis.Happy:    "The user is in a good mood now. Please respond with a positive and cheerful tone, and you can share some interesting thoughts or suggestions.",
	analysis.Sad:      "The user is feeling down now. Please respond with a warm and comforting tone, providing emotional support and encouragement.",
	analysis.Angry:    "The user is emotionally agitated now. Please respond with a calm and understanding tone, helping the user to calm down.",
	analysis.Fear:     "The user is feeling scared or anxious now. Please respond with a safe and reassuring tone, providing a sense of security.",
	analysis.Surprise: "The user is feeling surprised now. Please respond with an equally surprised but positive tone, sharing this excitement.",
	analysis.Disgust:  "The user is feeling disgusted now. Please respond with an understanding and sympathetic tone, avoiding aggravating negative emotions.",
	analysis.Neutral:  "The user is emotionally calm now. Please respond with a natural and friendly tone, maintaining the flow of conversation.",
	analysis.Excited:  "The user is very excited now. Please respond with an equally excited and enthusiastic tone, sharing this positive emotion.",
}

var emotionDescriptions = map[analysis.Label]string{
	analysis.Happy:    "happy",
	analysis.Sad:      "sad",
	analysis.Angry:    "angry",
	analysis.Fear:     "fearful",
	analysis.Surprise: "surprised",
	analysis.Disgust:  "disgusted",
	analysis.Neutral:  "calm",
	analysis.Excited:  "excited",
}

// confidenceAdverb 把置信度折算为三档程度副词。
func confidenceAdverb(confidence float64) string {
	switch {
	case confidence > 0.8:
		return "very"
	case confidence > 0.6:
		return "quite"
	default:
		return "slightly"
	}
}

func describeEmotion(label analysis.Label) string {
	if desc, ok := emotionDescriptions[label]; ok {
		return desc
	}
	return "calm"
}

// buildEmotionContext 生成情绪上下文句子，如
// "Detected that the user is quite sad. ..."。
func buildEmotionContext(label analysis.Label, confidence float64) string {
	directive := toneDirectives[label]
	return fmt.Sprintf("Detected that the user is %s %s. %s",
		confidenceAdverb(confidence), describeEmotion(label), directive)
}

// buildSystemPrompt 组装完整的系统提示词。
func buildSystemPrompt(label analysis.Label, confidence float64) string {
	return fmt.Sprintf(`You are an emotionally intelligent AI assistant, specifically designed to provide emotional support and meaningful conversations.

%s

Please follow these principles:
1. Adjust your response style and tone based on the user's emotional state
2. Provide sincere and empathetic responses
3. Avoid overly formal or mechanical language
4. Offer emotional support and encouragement when appropriate
5. Maintain naturalness and coherence in conversation
6. Respond in English, unless the user uses another language

Remember: Your goal is to be an understanding and supportive friend, not just an information provider.`,
		buildEmotionContext(label, confidence))
}

// contextTurnLimit 限制进入提示词的历史条数。
const contextTurnLimit = 5

// BuildContext 将最近的用户轮次渲染为提示词上下文，格式为
// "user: text (emotion, confidence)"，无历史时返回空串。
func BuildContext(history []chatmodel.Turn) string {
	userTurns := make([]chatmodel.Turn, 0, len(history))
	for _, turn := range history {
		if turn.Speaker == chatmodel.SpeakerUser {
			userTurns = append(userTurns, turn)
		}
	}
	if len(userTurns) == 0 {
		return ""
	}

	if len(userTurns) > contextTurnLimit {
		userTurns = userTurns[len(userTurns)-contextTurnLimit:]
	}

	var builder strings.Builder
	builder.WriteString("Recent conversation history:\n")
	for _, turn := range userTurns {
		builder.WriteString(string(turn.Speaker))
		builder.WriteString(": ")
		builder.WriteString(turn.Text)
		if turn.Emotion != "" {
			fmt.Fprintf(&builder, " (%s, %.2f)", turn.Emotion, turn.Confidence)
		}
		builder.WriteString("\n")
	}
	return strings.TrimRight(builder.String(), "\n")
}
