package domain

import (
	crypto_rand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// GaussianSource 标准正态分布随机数源
// 每个 worker 独占一个实例；内部状态随每次抽样演化，不是线程安全的，
// 绝不能在多个 goroutine 间共享
type GaussianSource struct {
	rng *rand.Rand
}

// NewGaussianSource 创建熵种子随机数源
// 种子取自 crypto/rand；取熵失败时构造失败，绝不回退到固定种子，
// 否则不同 worker 的抽样序列会失去独立性
func NewGaussianSource() (*GaussianSource, error) {
	var b [8]byte
	if _, err := crypto_rand.Read(b[:]); err != nil {
		return nil, fmt.Errorf("failed to seed gaussian source: %w", err)
	}
	seed := int64(binary.LittleEndian.Uint64(b[:]))
	return &GaussianSource{rng: rand.New(rand.NewSource(seed))}, nil
}

// NewSeededGaussianSource 创建显式种子随机数源
// 仅用于需要确定性结果的测试；相同种子与参数产生逐位相同的结果
func NewSeededGaussianSource(seed int64) *GaussianSource {
	return &GaussianSource{rng: rand.New(rand.NewSource(seed))}
}

// NextGaussian 返回一个标准正态分布（均值 0，标准差 1）抽样
func (g *GaussianSource) NextGaussian() float64 {
	return g.rng.NormFloat64()
}
