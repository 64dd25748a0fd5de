package speech

import (
	analysis "github.com/zhouzirui/emovoice/backend/internal/analysis/emotion"
)

// voiceSettings 对应 ElevenLabs 的 voice_settings 参数。
type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

var baseVoiceSettings = voiceSettings{
	Stability:       0.5,
	SimilarityBoost: 0.75,
	Style:           0.0,
	UseSpeakerBoost: true,
}

// 按情绪微调合成参数：稳定度、相似度与风格强度。
var emotionVoiceSettings = map[analysis.Label]voiceSettings{
	analysis.Happy:    {Stability: 0.6, SimilarityBoost: 0.8, Style: 0.3, UseSpeakerBoost: true},
	analysis.Sad:      {Stability: 0.7, SimilarityBoost: 0.6, Style: -0.2, UseSpeakerBoost: true},
	analysis.Angry:    {Stability: 0.4, SimilarityBoost: 0.9, Style: 0.5, UseSpeakerBoost: true},
	analysis.Fear:     {Stability: 0.8, SimilarityBoost: 0.5, Style: -0.3, UseSpeakerBoost: true},
	analysis.Surprise: {Stability: 0.5, SimilarityBoost: 0.8, Style: 0.4, UseSpeakerBoost: true},
	analysis.Disgust:  {Stability: 0.6, SimilarityBoost: 0.7, Style: -0.1, UseSpeakerBoost: true},
	analysis.Neutral:  {Stability: 0.5, SimilarityBoost: 0.75, Style: 0.0, UseSpeakerBoost: true},
	analysis.Excited:  {Stability: 0.4, SimilarityBoost: 0.8, Style: 0.4, UseSpeakerBoost: true},
}

// settingsForEmotion 返回该情绪对应的合成参数，未知情绪用基础参数。
func settingsForEmotion(label analysis.Label) voiceSettings {
	if settings, ok := emotionVoiceSettings[label]; ok {
		return settings
	}
	return baseVoiceSettings
}
