package voice

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/zhouzirui/emovoice/backend/internal/analysis/emotion"
	chatservice "github.com/zhouzirui/emovoice/backend/internal/service/chat"
	emotionservice "github.com/zhouzirui/emovoice/backend/internal/service/emotion"
	"github.com/zhouzirui/emovoice/backend/internal/service/session"
	"github.com/zhouzirui/emovoice/backend/internal/service/speech"
	"github.com/zhouzirui/emovoice/backend/pkg/utils"
)

// ServiceInfo 描述各能力当前装配的是真实适配器还是桩实现，
// 由cmd/api在装配时确定一次，健康检查原样上报。
type ServiceInfo struct {
	EmotionMode      string
	ChatMode         string
	VoiceMode        string
	OpenAIConfigured bool
	ElevenConfigured bool
}

// Handler 语音对话服务的HTTP处理器
type Handler struct {
	pipeline    *session.Pipeline
	registry    *session.Registry
	classifier  emotionservice.Classifier
	generator   *chatservice.Generator
	synthesizer speech.Synthesizer
	upgrader    websocket.Upgrader
	idleTimeout time.Duration
	info        ServiceInfo
}

// New 创建语音处理器
func New(pipeline *session.Pipeline, registry *session.Registry, classifier emotionservice.Classifier, generator *chatservice.Generator, synthesizer speech.Synthesizer, info ServiceInfo) *Handler {
	return &Handler{
		pipeline:    pipeline,
		registry:    registry,
		classifier:  classifier,
		generator:   generator,
		synthesizer: synthesizer,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		idleTimeout: defaultIdleTimeout,
		info:        info,
	}
}

// RegisterRoutes 注册语音相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/voice/ws", h.handleWebSocket)
	r.Post("/emotion", h.handleEmotion)
	r.Post("/chat", h.handleChat)
	r.Post("/tts", h.handleTTS)
	r.Get("/voices", h.handleVoices)
}

// voiceLister 由支持音色查询的合成器实现。
type voiceLister interface {
	Voices(ctx context.Context) ([]speech.Voice, error)
}

type emotionResponse struct {
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
}

// handleEmotion 对请求体中的原始音频做一次情绪识别
func (h *Handler) handleEmotion(w http.ResponseWriter, r *http.Request) {
	audioData, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "failed to read audio data")
		return
	}

	label, confidence, err := h.classifier.Classify(r.Context(), audioData)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, emotionResponse{
		Emotion:    string(label),
		Confidence: confidence,
	})
}

type chatRequest struct {
	Text       string  `json:"text"`
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
}

type chatResponse struct {
	Message          string  `json:"message"`
	EmotionAdapted   bool    `json:"emotion_adapted"`
	SuggestedEmotion string  `json:"suggested_emotion,omitempty"`
	Confidence       float64 `json:"confidence"`
}

// handleChat 不经语音链路直接生成一条情绪适配回复
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := utils.DecodeJSON(r.Body, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		utils.RespondError(w, http.StatusBadRequest, "text is required")
		return
	}

	label, ok := emotion.ParseLabel(req.Emotion)
	if !ok {
		label = emotion.Neutral
	}
	confidence := req.Confidence
	if confidence <= 0 || confidence > 1 {
		confidence = 0.5
	}

	reply, adapted := h.generator.Generate(r.Context(), req.Text, label, confidence, nil)

	resp := chatResponse{
		Message:        reply,
		EmotionAdapted: adapted,
		Confidence:     confidence,
	}
	if adapted {
		resp.SuggestedEmotion = string(label)
	}
	utils.RespondJSON(w, http.StatusOK, resp)
}

type ttsRequest struct {
	Text    string `json:"text"`
	Emotion string `json:"emotion"`
}

type ttsResponse struct {
	AudioData string `json:"audio_data"`
}

// handleTTS 把文本合成为语音并以base64返回
func (h *Handler) handleTTS(w http.ResponseWriter, r *http.Request) {
	var req ttsRequest
	if err := utils.DecodeJSON(r.Body, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		utils.RespondError(w, http.StatusBadRequest, "text is required")
		return
	}

	label, ok := emotion.ParseLabel(req.Emotion)
	if !ok {
		label = emotion.Neutral
	}

	audioData, err := h.synthesizer.Synthesize(r.Context(), req.Text, label)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, ttsResponse{
		AudioData: base64.StdEncoding.EncodeToString(audioData),
	})
}

// handleVoices 列出可用音色，合成器不支持查询时返回空列表
func (h *Handler) handleVoices(w http.ResponseWriter, r *http.Request) {
	lister, ok := h.synthesizer.(voiceLister)
	if !ok {
		utils.RespondJSON(w, http.StatusOK, map[string]any{"voices": []speech.Voice{}})
		return
	}

	voices, err := lister.Voices(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusBadGateway, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"voices": voices})
}

// HandleHealth 健康检查：上报各服务装配模式与活跃连接数
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"services": map[string]string{
			"emotion_recognition": h.info.EmotionMode,
			"chat_service":        h.info.ChatMode,
			"voice_service":       h.info.VoiceMode,
		},
		"active_connections": h.registry.Count(),
		"api_keys_configured": map[string]bool{
			"openai":     h.info.OpenAIConfigured,
			"elevenlabs": h.info.ElevenConfigured,
		},
	})
}

// HandleRoot 服务说明
func (h *Handler) HandleRoot(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "Emotion-Aware Voice Chat Assistant API",
	})
}
