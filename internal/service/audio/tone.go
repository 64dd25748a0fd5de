package audio

import (
	"bytes"
	"encoding/binary"
	"math"
)

const (
	toneSampleRate = 22050
	toneFrequency  = 440.0
	toneAmplitude  = 0.1
	toneDuration   = 1.0 // seconds
)

// FallbackTone 生成本地兜底音频：1秒 440Hz 正弦波，16-bit 单声道 WAV。
// 语音合成失败时返回它，保证下游始终拿到可解码的非空音频。
func FallbackTone() ([]byte, error) {
	sampleCount := int(toneSampleRate * toneDuration)
	pcm := make([]int16, sampleCount)
	for i := range pcm {
		t := float64(i) / toneSampleRate
		pcm[i] = int16(toneAmplitude * 32767 * math.Sin(2*math.Pi*toneFrequency*t))
	}
	return encodeWAV(pcm, toneSampleRate)
}

// encodeWAV 写出 PCM16 单声道 RIFF/WAVE 容器。
func encodeWAV(pcm []int16, sampleRate int) ([]byte, error) {
	var buf bytes.Buffer

	dataSize := uint32(len(pcm) * 2)

	buf.WriteString("RIFF")
	if err := binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize)); err != nil {
		return nil, err
	}
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	if err := binary.Write(&buf, binary.LittleEndian, uint32(16)); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, uint16(1)); err != nil { // PCM
		return nil, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, uint16(1)); err != nil { // mono
		return nil, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, uint32(sampleRate)); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*2)); err != nil { // byte rate
		return nil, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, uint16(2)); err != nil { // block align
		return nil, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, uint16(16)); err != nil { // bits per sample
		return nil, err
	}

	buf.WriteString("data")
	if err := binary.Write(&buf, binary.LittleEndian, dataSize); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, pcm); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
