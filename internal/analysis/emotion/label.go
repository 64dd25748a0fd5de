package emotion

import "strings"

// Label 表示管线各阶段共用的情绪标签，取值为固定的八类。
type Label string

const (
	Happy    Label = "happy"
	Sad      Label = "sad"
	Angry    Label = "angry"
	Fear     Label = "fear"
	Surprise Label = "surprise"
	Disgust  Label = "disgust"
	Neutral  Label = "neutral"
	Excited  Label = "excited"
)

var allLabels = []Label{Happy, Sad, Angry, Fear, Surprise, Disgust, Neutral, Excited}

// All 返回全部八类情绪标签，顺序固定。
func All() []Label {
	out := make([]Label, len(allLabels))
	copy(out, allLabels)
	return out
}

// ParseLabel 将外部输入规范化为情绪标签。
func ParseLabel(raw string) (Label, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	switch normalized {
	case "happy":
		return Happy, true
	case "sad":
		return Sad, true
	case "angry":
		return Angry, true
	case "fear":
		return Fear, true
	case "surprise":
		return Surprise, true
	case "disgust":
		return Disgust, true
	case "neutral":
		return Neutral, true
	case "excited":
		return Excited, true
	default:
		return "", false
	}
}
