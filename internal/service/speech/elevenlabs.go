package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	analysis "github.com/zhouzirui/emovoice/backend/internal/analysis/emotion"
)

const (
	elevenLabsBaseURL = "https://api.elevenlabs.io/v1"
	// Rachel，英文女声，作为缺省音色。
	defaultVoiceID = "21m00Tcm4TlvDq8ikWAM"
	ttsModelID     = "eleven_multilingual_v2"
)

// ElevenLabsSynthesizer 通过 ElevenLabs HTTP 接口做语音合成，并按
// 情绪提示调整音色参数。
type ElevenLabsSynthesizer struct {
	apiKey  string
	voiceID string
	baseURL string
	client  *http.Client
}

// NewElevenLabsSynthesizer 创建 ElevenLabs 客户端。voiceID 为空时使用缺省音色。
func NewElevenLabsSynthesizer(apiKey, voiceID string, timeout time.Duration) *ElevenLabsSynthesizer {
	if voiceID == "" {
		voiceID = defaultVoiceID
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ElevenLabsSynthesizer{
		apiKey:  apiKey,
		voiceID: voiceID,
		baseURL: elevenLabsBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type ttsRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

// Synthesize 将文本合成为音频字节。空文本返回空音频而非错误。
func (s *ElevenLabsSynthesizer) Synthesize(ctx context.Context, text string, hint analysis.Label) ([]byte, error) {
	if text == "" {
		return []byte{}, nil
	}

	payload, err := json.Marshal(ttsRequest{
		Text:          text,
		ModelID:       ttsModelID,
		VoiceSettings: settingsForEmotion(hint),
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", s.baseURL, s.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("elevenlabs API error (%d): %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// Voice 描述一条可用音色。
type Voice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Language string `json:"language"`
}

// Voices 列出账号下可用的音色。
func (s *ElevenLabsSynthesizer) Voices(ctx context.Context) ([]Voice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/voices", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("elevenlabs voices error (%d): %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		Voices []struct {
			VoiceID string            `json:"voice_id"`
			Name    string            `json:"name"`
			Labels  map[string]string `json:"labels"`
		} `json:"voices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	voices := make([]Voice, 0, len(parsed.Voices))
	for _, v := range parsed.Voices {
		language := v.Labels["language"]
		if language == "" {
			language = "unknown"
		}
		voices = append(voices, Voice{ID: v.VoiceID, Name: v.Name, Language: language})
	}
	return voices, nil
}
