package session

import (
	"context"
	"log"

	analysis "github.com/zhouzirui/emovoice/backend/internal/analysis/emotion"
	chatmodel "github.com/zhouzirui/emovoice/backend/internal/model/chat"
	"github.com/zhouzirui/emovoice/backend/internal/service/audio"
	chatservice "github.com/zhouzirui/emovoice/backend/internal/service/chat"
	emotionservice "github.com/zhouzirui/emovoice/backend/internal/service/emotion"
	"github.com/zhouzirui/emovoice/backend/internal/service/speech"
)

// FallbackTranscript 是识别失败时使用的固定致歉文本。
const FallbackTranscript = "Sorry, I didn't catch that. Could you please repeat?"

// Pipeline 按固定顺序驱动一次完整的处理：情绪识别、语音转文本、
// 回复生成、语音合成。每个阶段单独兜底，任一阶段失败都不会中断
// 后续阶段，也不会向调用方抛错——直线式尽力而为，不做重试。
type Pipeline struct {
	classifier  emotionservice.Classifier
	transcriber speech.Transcriber
	generator   *chatservice.Generator
	synthesizer speech.Synthesizer
}

// NewPipeline 组装处理管线。四个能力在进程启动时显式注入。
func NewPipeline(classifier emotionservice.Classifier, transcriber speech.Transcriber, generator *chatservice.Generator, synthesizer speech.Synthesizer) *Pipeline {
	return &Pipeline{
		classifier:  classifier,
		transcriber: transcriber,
		generator:   generator,
		synthesizer: synthesizer,
	}
}

// Run 处理一个音频单元并返回结构化结果。结果永不为nil，
// ReplyText 永不为空，Confidence 始终落在 [0,1]。
func (p *Pipeline) Run(ctx context.Context, sess *chatmodel.Session, unit audio.Unit) *chatmodel.PipelineResult {
	// 阶段1：情绪识别，失败时退回 (neutral, 0.5)。
	label, confidence, err := p.classifier.Classify(ctx, unit.Data)
	if err != nil {
		log.Printf("[pipeline] session=%s emotion classification failed: %v", sess.ID, err)
		label, confidence = analysis.Neutral, 0.5
	}
	confidence = clampConfidence(confidence)

	// 阶段2：语音转文本，失败时替换为固定致歉文本，不重试。
	text, err := p.transcriber.Transcribe(ctx, unit.Data)
	if err != nil {
		log.Printf("[pipeline] session=%s transcription failed: %v", sess.ID, err)
		text = FallbackTranscript
	}

	// 阶段3：记录用户轮次（超出容量时淘汰最旧的）。
	sess.AppendTurn(chatmodel.Turn{
		Speaker:    chatmodel.SpeakerUser,
		Text:       text,
		Emotion:    label,
		Confidence: confidence,
	})

	// 阶段4：生成回复。Generate 内部兜底，永远返回可用文本。
	reply, adapted := p.generator.Generate(ctx, text, label, confidence, sess.History)

	// 阶段5：记录助手轮次，不附带情绪与置信度。
	sess.AppendTurn(chatmodel.Turn{
		Speaker: chatmodel.SpeakerAssistant,
		Text:    reply,
	})

	// 阶段6：语音合成，失败时用本地音频，再失败则返回空字节。
	replyAudio, err := p.synthesizer.Synthesize(ctx, reply, label)
	if err != nil {
		log.Printf("[pipeline] session=%s synthesis failed: %v", sess.ID, err)
		replyAudio, err = audio.FallbackTone()
		if err != nil {
			log.Printf("[pipeline] session=%s fallback tone failed: %v", sess.ID, err)
			replyAudio = []byte{}
		}
	}

	// 阶段7：组装结果，所有上游失败此刻都已被吸收。
	return &chatmodel.PipelineResult{
		UserText:   text,
		ReplyText:  reply,
		Emotion:    label,
		Confidence: confidence,
		Audio:      replyAudio,
		Adapted:    adapted,
	}
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
