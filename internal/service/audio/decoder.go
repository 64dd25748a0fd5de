package audio

import (
	"encoding/base64"
	"encoding/json"
	"time"
)

// Unit 表示一次管线处理的音频单元，不做持久化。
type Unit struct {
	Data        []byte
	Duration    time.Duration
	Placeholder bool
}

// 文本帧缺少音频或无法解析时使用的占位负载。管线对占位单元照常
// 运行，这保留了来源实现的宽容策略：任何入站帧都不会中断接收循环。
var placeholderPayload = []byte("placeholder-audio")

// PlaceholderUnit 返回占位音频单元。
func PlaceholderUnit() Unit {
	data := make([]byte, len(placeholderPayload))
	copy(data, placeholderPayload)
	return Unit{Data: data, Placeholder: true}
}

type audioEnvelope struct {
	Audio string `json:"audio"`
}

// DecodeFrame 将入站帧规范化为音频单元。二进制帧直接视为音频；
// 文本帧尝试按JSON解析并对 audio 字段做 base64 解码。解析失败、
// 字段缺失或解码失败一律返回占位单元，从不报错。
func DecodeFrame(binaryFrame bool, payload []byte) Unit {
	if binaryFrame {
		return Unit{Data: payload, Duration: EstimateDuration(payload)}
	}

	var envelope audioEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return PlaceholderUnit()
	}
	if envelope.Audio == "" {
		return PlaceholderUnit()
	}

	data, err := base64.StdEncoding.DecodeString(envelope.Audio)
	if err != nil {
		return PlaceholderUnit()
	}

	return Unit{Data: data, Duration: EstimateDuration(data)}
}

// EstimateDuration 按 16kHz 单声道 16-bit PCM 估算时长。
func EstimateDuration(data []byte) time.Duration {
	const bytesPerSecond = 16000 * 2
	if len(data) == 0 {
		return 0
	}
	return time.Duration(float64(len(data)) / bytesPerSecond * float64(time.Second))
}
