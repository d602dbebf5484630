package core

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
)

// DefaultSplitSeed keeps train/test partitions reproducible across runs.
const DefaultSplitSeed uint64 = 42

// DefaultTestFraction is the share of each class held out for evaluation.
const DefaultTestFraction = 0.2

// StratifiedSplit partitions row indices into train and test sets so that
// each label keeps its proportion in both. Every label needs at least two
// rows so that it appears on both sides.
func StratifiedSplit(labels []int, testFraction float64, seed uint64) ([]int, []int, error) {
	if len(labels) == 0 {
		return nil, nil, ErrEmptyDataset
	}
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, fmt.Errorf("test fraction must be in (0, 1), got %v", testFraction)
	}

	byLabel := make(map[int][]int)
	for i, l := range labels {
		byLabel[l] = append(byLabel[l], i)
	}
	classes := make([]int, 0, len(byLabel))
	for l := range byLabel {
		classes = append(classes, l)
	}
	sort.Ints(classes)

	rng := rand.New(rand.NewPCG(seed, seed))
	var train, test []int
	for _, l := range classes {
		idx := byLabel[l]
		if len(idx) < 2 {
			return nil, nil, fmt.Errorf("%w: class %d has %d row(s)", ErrLabelImbalance, l, len(idx))
		}
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

		nTest := int(math.Round(testFraction * float64(len(idx))))
		nTest = max(1, min(nTest, len(idx)-1))
		test = append(test, idx[:nTest]...)
		train = append(train, idx[nTest:]...)
	}
	sort.Ints(train)
	sort.Ints(test)
	return train, test, nil
}
