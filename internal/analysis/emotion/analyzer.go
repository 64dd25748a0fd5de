package emotion

// Decision 给出情绪识别结果及其置信度。
type Decision struct {
	Emotion    Label
	Confidence float64
	Score      int
}

// 声学特征，由PCM字节流直接统计得到。
type features struct {
	energy float64 // 平均绝对振幅，0~1
	zcr    float64 // 过零率，0~1
	peak   float64 // 峰值振幅，0~1
}

// Analyze 根据音频字节流推断情绪。输入按 16-bit 小端 PCM 解释；
// 无法形成有效特征时返回 neutral。该实现是规则版分类器，
// 与学习型模型共用同一契约，永远返回一个标签。
func Analyze(pcm []byte) Decision {
	f, ok := extract(pcm)
	if !ok {
		return Decision{Emotion: Neutral, Confidence: 0.5}
	}

	scores := make(map[Label]int)

	switch {
	case f.energy > 0.30:
		// 高能量：激烈的情绪。过零率高偏向愤怒，否则偏向兴奋。
		scores[Angry] += 3
		if f.zcr > 0.15 {
			scores[Angry] += 2
		} else {
			scores[Excited] += 3
		}
	case f.energy > 0.15:
		scores[Happy] += 3
		if f.zcr > 0.20 {
			scores[Surprise] += 3
		}
		if f.peak > 0.80 {
			scores[Excited] += 2
		}
	case f.energy > 0.05:
		scores[Neutral] += 2
		if f.zcr > 0.25 {
			scores[Fear] += 3
		}
		if f.zcr < 0.05 {
			scores[Sad] += 2
		}
	default:
		// 低能量：低落或紧张。
		scores[Sad] += 3
		if f.zcr > 0.30 {
			scores[Fear] += 2
		}
		if f.peak > 0.50 {
			scores[Disgust] += 2
		}
	}

	best := Neutral
	bestScore := 0
	for _, label := range allLabels {
		if s := scores[label]; s > bestScore {
			bestScore = s
			best = label
		}
	}

	if bestScore == 0 {
		return Decision{Emotion: Neutral, Confidence: 0.5}
	}

	confidence := 0.5 + 0.08*float64(bestScore)
	if confidence > 0.9 {
		confidence = 0.9
	}

	return Decision{Emotion: best, Confidence: confidence, Score: bestScore}
}

func extract(pcm []byte) (features, bool) {
	sampleCount := len(pcm) / 2
	if sampleCount == 0 {
		return features{}, false
	}

	var sumAbs float64
	var peak float64
	crossings := 0
	prevNegative := false

	for i := 0; i < sampleCount; i++ {
		sample := int16(uint16(pcm[2*i]) | uint16(pcm[2*i+1])<<8)
		abs := float64(sample)
		if abs < 0 {
			abs = -abs
		}
		sumAbs += abs
		if abs > peak {
			peak = abs
		}

		negative := sample < 0
		if i > 0 && negative != prevNegative {
			crossings++
		}
		prevNegative = negative
	}

	f := features{
		energy: sumAbs / float64(sampleCount) / 32768.0,
		peak:   peak / 32768.0,
	}
	if sampleCount > 1 {
		f.zcr = float64(crossings) / float64(sampleCount-1)
	}
	return f, true
}
