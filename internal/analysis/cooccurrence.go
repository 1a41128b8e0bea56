package analysis

import (
	"math"
	"sort"

	"github.com/KaramelBytes/catalogscope/internal/catalog"
)

// Node is a genre in the co-occurrence graph. Titles counts the titles carrying
// the genre and is independent of edge weights.
type Node struct {
	Genre  string  `json:"genre" yaml:"genre"`
	Titles int     `json:"titles" yaml:"titles"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
}

// Edge joins two genres, A < B, weighted by the number of titles listing both.
type Edge struct {
	A      string `json:"a" yaml:"a"`
	B      string `json:"b" yaml:"b"`
	Weight int    `json:"weight" yaml:"weight"`
}

// Graph is the undirected genre co-occurrence graph with its circular layout.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Layout positions graph nodes on a circle of radius Scale, then exchanges the
// positions of each Swaps pair in order.
type Layout struct {
	Scale float64     `json:"scale" yaml:"scale"`
	Swaps [][2]string `json:"swaps" yaml:"swaps"`
}

// DefaultLayout spreads the circle a little and untangles a few labels that
// otherwise overlap on the full catalog.
func DefaultLayout() Layout {
	return Layout{
		Scale: 1.2,
		Swaps: [][2]string{
			{"Drama", "Anime Series"},
			{"Independent Movies", "LGBTQ Movies"},
			{"Anime Series", "International Movies"},
		},
	}
}

type genrePair struct{ a, b string }

// BuildCooccurrence builds the graph over every title of t. Pass the whole
// catalog, not a filtered view: the graph is meant to stay fixed while the
// dashboard filters change.
func BuildCooccurrence(t *catalog.Table, layout Layout) Graph {
	weights := map[genrePair]int{}
	titles := map[string]int{}
	for _, ti := range t.Titles() {
		gs := distinct(SplitValues(ti.ListedIn, GenreDelimiter))
		for _, g := range gs {
			titles[g]++
		}
		for i := 0; i < len(gs); i++ {
			for j := i + 1; j < len(gs); j++ {
				a, b := gs[i], gs[j]
				if b < a {
					a, b = b, a
				}
				weights[genrePair{a, b}]++
			}
		}
	}

	g := Graph{Nodes: make([]Node, 0, len(titles)), Edges: make([]Edge, 0, len(weights))}
	for genre, n := range titles {
		g.Nodes = append(g.Nodes, Node{Genre: genre, Titles: n})
	}
	sort.Slice(g.Nodes, func(i, j int) bool { return g.Nodes[i].Genre < g.Nodes[j].Genre })
	for p, w := range weights {
		g.Edges = append(g.Edges, Edge{A: p.a, B: p.b, Weight: w})
	}
	sort.Slice(g.Edges, func(i, j int) bool {
		if g.Edges[i].A == g.Edges[j].A {
			return g.Edges[i].B < g.Edges[j].B
		}
		return g.Edges[i].A < g.Edges[j].A
	})
	applyLayout(g.Nodes, layout)
	return g
}

// Weight returns the edge weight between two genres in either order, 0 when absent.
func (g Graph) Weight(a, b string) int {
	if b < a {
		a, b = b, a
	}
	i := sort.Search(len(g.Edges), func(i int) bool {
		e := g.Edges[i]
		return e.A > a || (e.A == a && e.B >= b)
	})
	if i < len(g.Edges) && g.Edges[i].A == a && g.Edges[i].B == b {
		return g.Edges[i].Weight
	}
	return 0
}

// Node looks a genre up by name.
func (g Graph) Node(genre string) (Node, bool) {
	i := sort.Search(len(g.Nodes), func(i int) bool { return g.Nodes[i].Genre >= genre })
	if i < len(g.Nodes) && g.Nodes[i].Genre == genre {
		return g.Nodes[i], true
	}
	return Node{}, false
}

// applyLayout expects nodes sorted by genre.
func applyLayout(nodes []Node, l Layout) {
	n := len(nodes)
	if n == 1 {
		nodes[0].X, nodes[0].Y = 0, 0
	} else {
		for i := range nodes {
			theta := 2 * math.Pi * float64(i) / float64(n)
			nodes[i].X = l.Scale * math.Cos(theta)
			nodes[i].Y = l.Scale * math.Sin(theta)
		}
	}
	pos := make(map[string]int, n)
	for i, nd := range nodes {
		pos[nd.Genre] = i
	}
	for _, s := range l.Swaps {
		i, ok1 := pos[s[0]]
		j, ok2 := pos[s[1]]
		if !ok1 || !ok2 || i == j {
			continue
		}
		nodes[i].X, nodes[j].X = nodes[j].X, nodes[i].X
		nodes[i].Y, nodes[j].Y = nodes[j].Y, nodes[i].Y
	}
}

func distinct(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
