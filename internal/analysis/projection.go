package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ProjectionPoint places one title in the plane of the first two principal components.
type ProjectionPoint struct {
	Row    int     `json:"row" yaml:"row"`
	ShowID string  `json:"show_id" yaml:"show_id"`
	Type   string  `json:"type" yaml:"type"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
}

// Projection is the 2-D PCA of a genre membership matrix.
type Projection struct {
	Points []ProjectionPoint `json:"points" yaml:"points"`
	// ExplainedVariance is the share of total variance captured by each component.
	ExplainedVariance [2]float64 `json:"explained_variance" yaml:"explained_variance"`
}

// Project fits a principal component analysis on every row of m and returns the
// scores on the first two components.
//
// Component signs are fixed: within each component the loading with the largest
// magnitude is positive, the earliest genre winning ties. The same matrix
// therefore always projects to the same coordinates.
func Project(m Membership) (*Projection, error) {
	n, d := len(m.Matrix), len(m.Genres)
	if d < 2 {
		return nil, &DegenerateInputError{Op: "project genres", Reason: fmt.Sprintf("need at least 2 distinct genres, have %d", d)}
	}
	if n < 2 {
		return nil, &DegenerateInputError{Op: "project genres", Reason: fmt.Sprintf("need at least 2 titles, have %d", n)}
	}

	x := mat.NewDense(n, d, nil)
	for i, row := range m.Matrix {
		x.SetRow(i, row)
	}
	var pc stat.PC
	if ok := pc.PrincipalComponents(x, nil); !ok {
		return nil, fmt.Errorf("project genres: singular value decomposition did not converge")
	}
	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	vars := pc.VarsTo(nil)

	loadings := mat.DenseCopyOf(vecs.Slice(0, d, 0, 2))
	for j := 0; j < 2; j++ {
		if flipComponent(mat.Col(nil, j, loadings)) {
			for i := 0; i < d; i++ {
				loadings.Set(i, j, -loadings.At(i, j))
			}
		}
	}

	// scores of the mean-centered data
	centered := mat.DenseCopyOf(x)
	for j := 0; j < d; j++ {
		col := mat.Col(nil, j, x)
		mean := stat.Mean(col, nil)
		for i := range col {
			centered.Set(i, j, col[i]-mean)
		}
	}
	var scores mat.Dense
	scores.Mul(centered, loadings)

	p := &Projection{Points: make([]ProjectionPoint, n)}
	for i := 0; i < n; i++ {
		p.Points[i] = ProjectionPoint{
			Row:    m.Rows[i],
			ShowID: m.ShowIDs[i],
			Type:   m.Types[i],
			X:      scores.At(i, 0),
			Y:      scores.At(i, 1),
		}
	}
	var total float64
	for _, v := range vars {
		total += v
	}
	if total > 0 {
		p.ExplainedVariance = [2]float64{vars[0] / total, vars[1] / total}
	}
	return p, nil
}

// flipComponent reports whether the component's largest-magnitude loading is negative.
func flipComponent(v []float64) bool {
	best, at := -1.0, 0
	for i, x := range v {
		if a := math.Abs(x); a > best+1e-12 {
			best, at = a, i
		}
	}
	return v[at] < 0
}
