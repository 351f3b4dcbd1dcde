package boost

import "sort"

// Node is one decision node in flattened form. Leaf nodes carry the
// Newton leaf weight; internal nodes route rows with value < Threshold
// to Left and the rest to Right.
type Node struct {
	Feature   int
	Threshold float64
	Left      int
	Right     int
	Leaf      bool
	Value     float64
}

type Tree struct {
	Nodes []Node
}

// Score walks the tree for one feature row.
func (t *Tree) Score(row []float64) float64 {
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

type treeBuilder struct {
	cfg      Config
	features [][]float64
	grad     []float64
	hess     []float64
	nodes    []Node
}

// growTree fits one regression tree to the current gradient/hessian
// statistics.
func growTree(cfg Config, features [][]float64, grad, hess []float64) Tree {
	b := &treeBuilder{cfg: cfg, features: features, grad: grad, hess: hess}
	idx := make([]int, len(features))
	for i := range idx {
		idx[i] = i
	}
	b.build(idx, 0)
	return Tree{Nodes: b.nodes}
}

func (b *treeBuilder) build(idx []int, depth int) int {
	node := len(b.nodes)
	b.nodes = append(b.nodes, Node{})

	if depth >= b.cfg.MaxDepth || len(idx) < 2*b.cfg.MinSamplesLeaf {
		b.nodes[node] = b.leaf(idx)
		return node
	}

	feature, threshold, ok := b.bestSplit(idx)
	if !ok {
		b.nodes[node] = b.leaf(idx)
		return node
	}

	var left, right []int
	for _, i := range idx {
		if b.features[i][feature] < threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	l := b.build(left, depth+1)
	r := b.build(right, depth+1)
	b.nodes[node] = Node{Feature: feature, Threshold: threshold, Left: l, Right: r}
	return node
}

func (b *treeBuilder) leaf(idx []int) Node {
	var g, h float64
	for _, i := range idx {
		g += b.grad[i]
		h += b.hess[i]
	}
	return Node{Leaf: true, Value: -g / (h + b.cfg.Lambda)}
}

// bestSplit scans all features over at most MaxBins quantile
// thresholds and returns the split with the highest gain, if any
// positive-gain split satisfies the leaf size constraint.
func (b *treeBuilder) bestSplit(idx []int) (int, float64, bool) {
	var (
		bestGain    float64
		bestFeature int
		bestThresh  float64
		found       bool
	)

	var gTotal, hTotal float64
	for _, i := range idx {
		gTotal += b.grad[i]
		hTotal += b.hess[i]
	}
	parent := gTotal * gTotal / (hTotal + b.cfg.Lambda)

	width := len(b.features[0])
	values := make([]float64, 0, len(idx))

	for f := 0; f < width; f++ {
		values = values[:0]
		for _, i := range idx {
			values = append(values, b.features[i][f])
		}
		thresholds := splitCandidates(values, b.cfg.MaxBins)

		for _, t := range thresholds {
			var gl, hl float64
			nl := 0
			for _, i := range idx {
				if b.features[i][f] < t {
					gl += b.grad[i]
					hl += b.hess[i]
					nl++
				}
			}
			nr := len(idx) - nl
			if nl < b.cfg.MinSamplesLeaf || nr < b.cfg.MinSamplesLeaf {
				continue
			}
			gr := gTotal - gl
			hr := hTotal - hl
			gain := gl*gl/(hl+b.cfg.Lambda) + gr*gr/(hr+b.cfg.Lambda) - parent
			if gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThresh = t
				found = true
			}
		}
	}

	return bestFeature, bestThresh, found
}

// splitCandidates returns midpoints between distinct sorted values,
// thinned to at most maxBins entries.
func splitCandidates(values []float64, maxBins int) []float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	distinct := sorted[:0]
	for i, v := range sorted {
		if i == 0 || v != distinct[len(distinct)-1] {
			distinct = append(distinct, v)
		}
	}
	if len(distinct) < 2 {
		return nil
	}

	mids := make([]float64, 0, len(distinct)-1)
	for i := 1; i < len(distinct); i++ {
		mids = append(mids, (distinct[i-1]+distinct[i])/2)
	}
	if len(mids) <= maxBins {
		return mids
	}

	thinned := make([]float64, 0, maxBins)
	step := float64(len(mids)) / float64(maxBins)
	for i := 0; i < maxBins; i++ {
		thinned = append(thinned, mids[int(float64(i)*step)])
	}
	return thinned
}
