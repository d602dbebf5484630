package core

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// BoostParams configures gradient boosted tree training.
type BoostParams struct {
	NumTrees       int     `json:"num_trees" yaml:"num_trees"`
	MaxDepth       int     `json:"max_depth" yaml:"max_depth"`
	LearningRate   float64 `json:"learning_rate" yaml:"learning_rate"`
	Lambda         float64 `json:"lambda" yaml:"lambda"`                     // L2 penalty on leaf weights
	Gamma          float64 `json:"gamma" yaml:"gamma"`                       // Minimum gain to split
	MinChildWeight float64 `json:"min_child_weight" yaml:"min_child_weight"` // Minimum hessian per child
	BaseScore      float64 `json:"base_score" yaml:"base_score"`             // Initial probability
	Objective      string  `json:"objective" yaml:"objective"`
}

// LogisticObjective is the only supported objective.
const LogisticObjective = "binary:logistic"

// DefaultBoostParams returns 100 trees of depth 6 at learning rate 0.1.
func DefaultBoostParams() BoostParams {
	return BoostParams{
		NumTrees:       100,
		MaxDepth:       6,
		LearningRate:   0.1,
		Lambda:         1,
		Gamma:          0,
		MinChildWeight: 1,
		BaseScore:      0.5,
		Objective:      LogisticObjective,
	}
}

// TreeNode is one node of a flattened regression tree.
// Samples with x[Feature] < Threshold go Left.
type TreeNode struct {
	Leaf      bool    `json:"leaf"`
	Feature   int     `json:"feature,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	Left      int     `json:"left,omitempty"`
	Right     int     `json:"right,omitempty"`
	Value     float64 `json:"value,omitempty"` // Leaf margin, already scaled by the learning rate
}

// Tree is a regression tree stored as a node slice rooted at index 0.
type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

// margin walks the tree for one row.
func (t Tree) margin(row []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Leaf {
			return n.Value
		}
		if row[n.Feature] < n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// TrainedClassifier is a boosted ensemble for binary classification.
type TrainedClassifier struct {
	Params              BoostParams `json:"params"`
	FeatureNames        []string    `json:"feature_names"`
	CategoricalFeatures []string    `json:"categorical_features"`
	BaseMargin          float64     `json:"base_margin"`
	Trees               []Tree      `json:"trees"`
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// PredictProba returns the probability of the positive class.
func (c *TrainedClassifier) PredictProba(row []float64) float64 {
	m := c.BaseMargin
	for _, t := range c.Trees {
		m += t.margin(row)
	}
	return sigmoid(m)
}

// Predict returns 1 when the positive class probability is at least one half.
func (c *TrainedClassifier) Predict(row []float64) int {
	if c.PredictProba(row) >= 0.5 {
		return 1
	}
	return 0
}

// Validate checks that every tree is well formed for the feature count.
func (c *TrainedClassifier) Validate() error {
	if len(c.FeatureNames) == 0 {
		return errors.New("classifier has no features")
	}
	if len(c.Trees) == 0 {
		return errors.New("classifier has no trees")
	}
	for ti, t := range c.Trees {
		if len(t.Nodes) == 0 {
			return fmt.Errorf("tree %d has no nodes", ti)
		}
		for ni, n := range t.Nodes {
			if n.Leaf {
				if math.IsNaN(n.Value) || math.IsInf(n.Value, 0) {
					return fmt.Errorf("tree %d node %d has a non-finite value", ti, ni)
				}
				continue
			}
			if n.Feature < 0 || n.Feature >= len(c.FeatureNames) {
				return fmt.Errorf("tree %d node %d splits on unknown feature %d", ti, ni, n.Feature)
			}
			// Children always come after their parent, so walks terminate.
			if n.Left <= ni || n.Right <= ni || n.Left >= len(t.Nodes) || n.Right >= len(t.Nodes) {
				return fmt.Errorf("tree %d node %d has invalid children", ti, ni)
			}
		}
	}
	return nil
}

// splitCandidate is the best split found for one open node.
type splitCandidate struct {
	gain      float64
	feature   int
	threshold float64
	found     bool
}

// scanState accumulates left-side statistics while sweeping a sorted feature.
type scanState struct {
	gl, hl float64
	last   float64
	seen   bool
}

// treeBuilder grows one tree level by level with exact greedy splits.
type treeBuilder struct {
	x      [][]float64
	grad   []float64
	hess   []float64
	sorted [][]int // Row indices sorted by each feature
	params BoostParams
	nodes  []TreeNode
	g, h   []float64 // Gradient and hessian sums per node
	pos    []int     // Open node of each row, -1 once it reaches a leaf
	isOpen []bool
	dim    int
}

func (b *treeBuilder) addNode(g, h float64) int {
	b.nodes = append(b.nodes, TreeNode{Leaf: true})
	b.g = append(b.g, g)
	b.h = append(b.h, h)
	b.isOpen = append(b.isOpen, true)
	return len(b.nodes) - 1
}

func (b *treeBuilder) leafWeight(id int) float64 {
	return -b.g[id] / (b.h[id] + b.params.Lambda) * b.params.LearningRate
}

func (b *treeBuilder) score(g, h float64) float64 {
	return g * g / (h + b.params.Lambda)
}

// findSplits sweeps every feature once and records the best split per open node.
func (b *treeBuilder) findSplits() []splitCandidate {
	best := make([]splitCandidate, len(b.nodes))
	scan := make([]scanState, len(b.nodes))
	for f := range b.dim {
		clear(scan)
		for _, i := range b.sorted[f] {
			id := b.pos[i]
			if id < 0 || !b.isOpen[id] {
				continue
			}
			st := &scan[id]
			v := b.x[i][f]
			if st.seen && v != st.last {
				gr := b.g[id] - st.gl
				hr := b.h[id] - st.hl
				if st.hl >= b.params.MinChildWeight && hr >= b.params.MinChildWeight {
					gain := 0.5*(b.score(st.gl, st.hl)+b.score(gr, hr)-b.score(b.g[id], b.h[id])) - b.params.Gamma
					if gain > best[id].gain {
						best[id] = splitCandidate{gain: gain, feature: f, threshold: (st.last + v) / 2, found: true}
					}
				}
			}
			st.gl += b.grad[i]
			st.hl += b.hess[i]
			st.last = v
			st.seen = true
		}
	}
	return best
}

func (b *treeBuilder) build() Tree {
	var g0, h0 float64
	for i := range b.x {
		b.pos[i] = 0
		g0 += b.grad[i]
		h0 += b.hess[i]
	}
	b.addNode(g0, h0)
	open := []int{0}

	for depth := 0; depth < b.params.MaxDepth && len(open) > 0; depth++ {
		best := b.findSplits()
		var next []int
		for _, id := range open {
			cand := best[id]
			b.isOpen[id] = false
			if !cand.found || cand.gain <= 0 {
				b.nodes[id].Value = b.leafWeight(id)
				continue
			}
			left := b.addNode(0, 0)
			right := b.addNode(0, 0)
			b.nodes[id] = TreeNode{Feature: cand.feature, Threshold: cand.threshold, Left: left, Right: right}
			next = append(next, left, right)
		}

		for i, id := range b.pos {
			if id < 0 {
				continue
			}
			n := b.nodes[id]
			if n.Leaf {
				b.pos[i] = -1
				continue
			}
			child := n.Right
			if b.x[i][n.Feature] < n.Threshold {
				child = n.Left
			}
			b.pos[i] = child
			b.g[child] += b.grad[i]
			b.h[child] += b.hess[i]
		}
		open = next
	}

	for _, id := range open {
		b.nodes[id].Value = b.leafWeight(id)
	}
	return Tree{Nodes: b.nodes}
}

// TrainBoosted fits a logistic gradient boosted ensemble with second-order updates.
// Labels must be 0 or 1.
func TrainBoosted(x [][]float64, y []float64, featureNames []string, params BoostParams) (*TrainedClassifier, error) {
	if len(x) == 0 {
		return nil, ErrEmptyDataset
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("feature rows (%d) and labels (%d) differ", len(x), len(y))
	}
	if params.Objective != "" && params.Objective != LogisticObjective {
		return nil, fmt.Errorf("unsupported objective: %s", params.Objective)
	}
	if params.BaseScore <= 0 || params.BaseScore >= 1 {
		return nil, fmt.Errorf("base score must be in (0, 1), got %v", params.BaseScore)
	}
	dim := len(featureNames)
	for i, row := range x {
		if len(row) != dim {
			return nil, fmt.Errorf("row %d has %d features, expected %d", i, len(row), dim)
		}
	}

	n := len(x)
	sorted := make([][]int, dim)
	for f := range dim {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool { return x[idx[a]][f] < x[idx[b]][f] })
		sorted[f] = idx
	}

	clf := &TrainedClassifier{
		Params:       params,
		FeatureNames: append([]string(nil), featureNames...),
		BaseMargin:   math.Log(params.BaseScore / (1 - params.BaseScore)),
		Trees:        make([]Tree, 0, params.NumTrees),
	}

	margin := make([]float64, n)
	for i := range margin {
		margin[i] = clf.BaseMargin
	}
	grad := make([]float64, n)
	hess := make([]float64, n)

	for range params.NumTrees {
		for i := range n {
			p := sigmoid(margin[i])
			grad[i] = p - y[i]
			hess[i] = math.Max(p*(1-p), 1e-16)
		}
		b := &treeBuilder{
			x:      x,
			grad:   grad,
			hess:   hess,
			sorted: sorted,
			params: params,
			pos:    make([]int, n),
			dim:    dim,
		}
		tree := b.build()
		for i := range n {
			margin[i] += tree.margin(x[i])
		}
		clf.Trees = append(clf.Trees, tree)
	}
	return clf, nil
}
