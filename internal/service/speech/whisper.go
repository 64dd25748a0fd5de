package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const whisperEndpoint = "https://api.openai.com/v1/audio/transcriptions"

// WhisperTranscriber 通过 OpenAI Whisper HTTP 接口做语音识别。
type WhisperTranscriber struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewWhisperTranscriber 创建 Whisper 客户端。model 为空时使用 whisper-1。
func NewWhisperTranscriber(apiKey, model string, timeout time.Duration) *WhisperTranscriber {
	if model == "" {
		model = "whisper-1"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &WhisperTranscriber{
		apiKey:   apiKey,
		model:    model,
		endpoint: whisperEndpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Transcribe 上传音频并返回识别文本。
func (w *WhisperTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(audio); err != nil {
		return "", err
	}
	if err := writer.WriteField("model", w.model); err != nil {
		return "", err
	}
	if err := writer.WriteField("response_format", "json"); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+w.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := w.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("whisper API error (%d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	return strings.TrimSpace(result.Text), nil
}
