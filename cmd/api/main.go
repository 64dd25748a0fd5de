package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/joho/godotenv"

	"github.com/zhouzirui/emovoice/backend/internal/config"
	"github.com/zhouzirui/emovoice/backend/internal/handler"
	"github.com/zhouzirui/emovoice/backend/internal/handler/voice"
	chatservice "github.com/zhouzirui/emovoice/backend/internal/service/chat"
	emotionservice "github.com/zhouzirui/emovoice/backend/internal/service/emotion"
	"github.com/zhouzirui/emovoice/backend/internal/service/session"
	speechservice "github.com/zhouzirui/emovoice/backend/internal/service/speech"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	info := voice.ServiceInfo{
		OpenAIConfigured: cfg.Speech.OpenAIKey != "",
		ElevenConfigured: cfg.Speech.ElevenLabsKey != "",
	}
	speechTimeout := time.Duration(cfg.Speech.Timeout) * time.Second

	// Emotion classifier: acoustic heuristics by default, stub on request
	var classifier emotionservice.Classifier
	if cfg.Emotion.Classifier == "stub" {
		classifier = emotionservice.NewStubClassifier(nil)
		info.EmotionMode = "stub"
		log.Println("Emotion classifier: stub (random labels)")
	} else {
		classifier = emotionservice.NewAcousticClassifier()
		info.EmotionMode = "real"
		log.Println("Emotion classifier: acoustic heuristics")
	}

	// Transcriber: Whisper when an OpenAI key is present
	var transcriber speechservice.Transcriber
	if cfg.Speech.OpenAIKey != "" {
		transcriber = speechservice.NewWhisperTranscriber(cfg.Speech.OpenAIKey, cfg.Speech.WhisperModel, speechTimeout)
		log.Println("Transcriber: Whisper initialized successfully")
	} else {
		transcriber = speechservice.NewStubTranscriber(nil)
		log.Println("OPENAI_API_KEY 未配置，转写使用桩实现")
	}

	// Synthesizer: ElevenLabs when its key is present
	var synthesizer speechservice.Synthesizer
	if cfg.Speech.ElevenLabsKey != "" {
		synthesizer = speechservice.NewElevenLabsSynthesizer(cfg.Speech.ElevenLabsKey, cfg.Speech.ElevenLabsVoice, speechTimeout)
		info.VoiceMode = "real"
		log.Println("Synthesizer: ElevenLabs initialized successfully")
	} else {
		synthesizer = speechservice.NewStubSynthesizer()
		info.VoiceMode = "stub"
		log.Println("ELEVENLABS_API_KEY 未配置，语音合成使用桩实现")
	}

	// Reply generator: LLM-backed when Ark credentials are present,
	// emotion-keyed fallback tables otherwise
	var chatModel model.ChatModel
	if cfg.AI.Enabled() {
		chatModel, err = cfg.AI.NewChatModel(ctx)
		if err != nil {
			log.Printf("warning: failed to initialize chat model: %v", err)
			log.Println("continuing with fallback replies - 请检查 Ark 模型相关环境变量")
			chatModel = nil
		} else {
			log.Println("Chat model initialized successfully")
		}
	} else {
		log.Println("Ark 凭证未配置，回复使用情绪兜底语料")
	}
	generator, err := chatservice.NewGenerator(ctx, chatModel, nil)
	if err != nil {
		log.Fatalf("failed to initialize reply generator: %v", err)
	}
	if generator.Adapted() {
		info.ChatMode = "real"
	} else {
		info.ChatMode = "stub"
	}

	registry := session.NewRegistry()
	pipeline := session.NewPipeline(classifier, transcriber, generator, synthesizer)

	voiceHandler := voice.New(pipeline, registry, classifier, generator, synthesizer, info)
	router := handler.NewRouter(voiceHandler)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("EmoVoice backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
