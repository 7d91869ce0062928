package layout

import (
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"
)

// Result is the serializable outcome of a layout.
type Result struct {
	ID         string         `json:"id" bson:"id"`
	Directed   bool           `json:"directed" bson:"directed"`
	Seed       uint64         `json:"seed,omitempty" bson:"seed,omitempty"`
	K          float64        `json:"k" bson:"k"`
	Dim        float64        `json:"dim" bson:"dim"`
	Margin     float64        `json:"margin" bson:"margin"`
	MaxRadius  float64        `json:"max_radius" bson:"max_radius"`
	Runs       int            `json:"runs" bson:"runs"`
	Iterations int            `json:"iterations" bson:"iterations"`
	CreatedAt  time.Time      `json:"created_at" bson:"created_at"`
	Nodes      []NodePosition `json:"nodes" bson:"nodes"`
	Edges      []EdgeWeight   `json:"edges" bson:"edges"`
}

// NodePosition is the final position of one node.
type NodePosition struct {
	ID string  `json:"id" bson:"id"`
	X  float64 `json:"x" bson:"x"`
	Y  float64 `json:"y" bson:"y"`
}

// EdgeWeight is one canonical edge with its aggregate weight and
// multiplicity.
type EdgeWeight struct {
	From   string  `json:"from" bson:"from"`
	To     string  `json:"to" bson:"to"`
	Weight float64 `json:"weight" bson:"weight"`
	Count  int     `json:"count" bson:"count"`
}

// Position returns the position of id.
func (r *Result) Position(id string) (NodePosition, bool) {
	for _, n := range r.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodePosition{}, false
}

// Snapshot returns the final frame described by r.
func (r *Result) Snapshot() Snapshot {
	pos := make(map[string]r2.Vec, len(r.Nodes))
	for _, n := range r.Nodes {
		pos[n.ID] = r2.Vec{X: n.X, Y: n.Y}
	}
	return Snapshot{
		Run:       max(r.Runs-1, 0),
		MaxRadius: r.MaxRadius,
		Final:     true,
		Positions: pos,
	}
}

// Result exports the current state. Nodes follow index order and edges
// follow first-insertion order.
func (e *Engine) Result() Result {
	res := Result{
		ID:         uuid.NewString(),
		Directed:   e.g.Directed(),
		Seed:       e.seed,
		K:          e.k,
		Dim:        e.cfg.Dim,
		Margin:     e.cfg.Margin(),
		MaxRadius:  e.maxR,
		Runs:       e.Runs(),
		Iterations: e.iterations,
		CreatedAt:  time.Now().UTC(),
		Nodes:      make([]NodePosition, len(e.ids)),
		Edges:      make([]EdgeWeight, 0, len(e.edges)),
	}
	for i, id := range e.ids {
		res.Nodes[i] = NodePosition{ID: id, X: e.pos[i].X, Y: e.pos[i].Y}
	}
	for _, key := range e.g.Edges() {
		info, _ := e.g.Edge(key.U, key.V)
		res.Edges = append(res.Edges, EdgeWeight{
			From:   key.U,
			To:     key.V,
			Weight: info.Weight,
			Count:  info.Count(),
		})
	}
	return res
}
