package voice

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	chatmodel "github.com/zhouzirui/emovoice/backend/internal/model/chat"
	"github.com/zhouzirui/emovoice/backend/internal/service/audio"
)

// 空闲超时：该时间内没有入站帧则发送一次心跳。
const defaultIdleTimeout = 30 * time.Second

type chatResponseFrame struct {
	Type              string  `json:"type"`
	UserText          string  `json:"user_text"`
	AssistantText     string  `json:"assistant_text"`
	Emotion           string  `json:"emotion"`
	EmotionConfidence float64 `json:"emotion_confidence"`
	AudioData         string  `json:"audio_data"`
	Timestamp         string  `json:"timestamp"`
}

type heartbeatFrame struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
}

type errorFrame struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// handleWebSocket 处理一条语音会话连接的完整生命周期。
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[websocket] upgrade failed: %v", err)
		return
	}

	sess := chatmodel.NewSession(uuid.NewString())
	sess.State = chatmodel.StateOpen
	h.registry.Add(sess)
	log.Printf("[websocket] session %s connected, active=%d", sess.ID, h.registry.Count())

	ctx, cancel := context.WithCancel(r.Context())
	sup := &supervisor{handler: h, conn: conn, sess: sess, cancel: cancel}
	defer sup.close()

	sup.run(ctx)
}

type inboundFrame struct {
	messageType int
	payload     []byte
	err         error
}

// supervisor 驱动单条连接的接收循环。会话状态只由这一个goroutine
// 触碰；同一会话内一次只处理一个单元，回复顺序与入站顺序一致。
type supervisor struct {
	handler   *Handler
	conn      *websocket.Conn
	sess      *chatmodel.Session
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func (s *supervisor) run(ctx context.Context) {
	frames := make(chan inboundFrame)
	go s.readLoop(ctx, frames)

	for {
		s.sess.State = chatmodel.StateReceiving

		select {
		case <-ctx.Done():
			return

		case frame, ok := <-frames:
			if !ok {
				return
			}
			if frame.err != nil {
				if websocket.IsUnexpectedCloseError(frame.err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("[websocket] session=%s read error: %v", s.sess.ID, frame.err)
				}
				return
			}

			s.sess.Touch()
			unit := audio.DecodeFrame(frame.messageType == websocket.BinaryMessage, frame.payload)

			s.sess.State = chatmodel.StateProcessing
			if err := s.processUnit(ctx, unit); err != nil {
				log.Printf("[websocket] session=%s send failed: %v", s.sess.ID, err)
				return
			}

		case <-time.After(s.handler.idleTimeout):
			// 空闲超时不是错误：发一次心跳后继续等待。
			if err := s.conn.WriteJSON(heartbeatFrame{Type: "heartbeat", Timestamp: timestamp()}); err != nil {
				log.Printf("[websocket] session=%s heartbeat failed: %v", s.sess.ID, err)
				return
			}
		}
	}
}

// readLoop 把入站帧抽入通道，读错误作为最后一条消息传出。
func (s *supervisor) readLoop(ctx context.Context, frames chan<- inboundFrame) {
	defer close(frames)
	for {
		messageType, payload, err := s.conn.ReadMessage()
		if err != nil {
			select {
			case frames <- inboundFrame{err: err}:
			case <-ctx.Done():
			}
			return
		}

		select {
		case frames <- inboundFrame{messageType: messageType, payload: payload}:
		case <-ctx.Done():
			return
		}
	}
}

// processUnit 同步处理一个音频单元。处理失败只通知客户端，循环
// 继续；返回非nil错误仅代表写帧失败，此时连接进入关闭流程。
func (s *supervisor) processUnit(ctx context.Context, unit audio.Unit) error {
	result, err := s.runPipeline(ctx, unit)
	if err != nil {
		log.Printf("[websocket] session=%s processing failed: %v", s.sess.ID, err)
		return s.conn.WriteJSON(errorFrame{
			Type:      "error",
			Message:   "Audio processing failed, please retry",
			Timestamp: timestamp(),
		})
	}

	return s.conn.WriteJSON(chatResponseFrame{
		Type:              "chat_response",
		UserText:          result.UserText,
		AssistantText:     result.ReplyText,
		Emotion:           string(result.Emotion),
		EmotionConfidence: result.Confidence,
		AudioData:         base64.StdEncoding.EncodeToString(result.Audio),
		Timestamp:         timestamp(),
	})
}

func (s *supervisor) runPipeline(ctx context.Context, unit audio.Unit) (result *chatmodel.PipelineResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pipeline panic: %v", r)
		}
	}()
	return s.handler.pipeline.Run(ctx, s.sess, unit), nil
}

// close 进入 Closing/Closed：注销会话、取消在途调用并关闭连接。
// 幂等，可安全重复调用。
func (s *supervisor) close() {
	s.closeOnce.Do(func() {
		s.sess.State = chatmodel.StateClosing
		s.cancel()
		s.handler.registry.Remove(s.sess.ID)
		_ = s.conn.Close()
		s.sess.State = chatmodel.StateClosed
		log.Printf("[websocket] session %s closed, active=%d", s.sess.ID, s.handler.registry.Count())
	})
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
