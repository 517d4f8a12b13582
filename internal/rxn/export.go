package rxn

import (
	"encoding/json"
	"fmt"
)

// ReactionSnapshot is the serializable view of a compiled reaction. Empty
// recycle slots are exported as "".
type ReactionSnapshot struct {
	Name           string            `json:"name"`
	Bucket         uint32            `json:"bucket"`
	NReactants     int               `json:"n_reactants"`
	NPathways      int               `json:"n_pathways"`
	Special        string            `json:"special,omitempty"`
	Players        []string          `json:"players"`
	Geometries     []int             `json:"geometries"`
	ProductIdx     []int             `json:"product_idx,omitempty"`
	CumProbs       []float64         `json:"cum_probs,omitempty"`
	MaxFixedP      float64           `json:"max_fixed_p"`
	MinNoReactionP float64           `json:"min_noreaction_p"`
	PbFactor       float64           `json:"pb_factor"`
	PathwayNames   []string          `json:"pathway_names,omitempty"`
	Schedule       []TimeVaryingRate `json:"schedule,omitempty"`
	Clamps         []ClampSnapshot   `json:"clamps,omitempty"`
}

// ClampSnapshot is the serializable view of a concentration clamp.
type ClampSnapshot struct {
	Molecule      string  `json:"molecule"`
	Orientation   int     `json:"orientation"`
	SurfaceClass  string  `json:"surface_class"`
	Concentration float64 `json:"concentration"`
}

// TableSnapshot is the serializable view of a compiled reaction table.
type TableSnapshot struct {
	Size                     int                `json:"size"`
	Reactions                []ReactionSnapshot `json:"reactions"`
	ProbabilityLimitExceeded bool               `json:"probability_limit_exceeded"`
}

// Snapshot captures the compiled table of r.
func (r *Result) Snapshot() TableSnapshot {
	snap := TableSnapshot{
		Size:                     r.Table.Size(),
		Reactions:                make([]ReactionSnapshot, 0, len(r.Reactions)),
		ProbabilityLimitExceeded: r.ProbabilityLimitExceeded,
	}
	for _, rx := range r.Reactions {
		snap.Reactions = append(snap.Reactions, snapshotReaction(r.Table, rx))
	}
	return snap
}

func snapshotReaction(t *Table, rx *Reaction) ReactionSnapshot {
	rs := ReactionSnapshot{
		Name:           rx.Name,
		Bucket:         t.HashIndex(rx.Reactants()...),
		NReactants:     rx.NReactants,
		NPathways:      rx.NPathways,
		Players:        make([]string, len(rx.Players)),
		Geometries:     append([]int(nil), rx.Geometries...),
		ProductIdx:     append([]int(nil), rx.ProductIdx...),
		CumProbs:       append([]float64(nil), rx.CumProbs...),
		MaxFixedP:      rx.MaxFixedP,
		MinNoReactionP: rx.MinNoReactionP,
		PbFactor:       rx.PbFactor,
		Schedule:       append([]TimeVaryingRate(nil), rx.Schedule...),
	}
	if rx.Special.Special() {
		rs.Special = rx.Special.String()
	}
	for i, sp := range rx.Players {
		if sp != nil {
			rs.Players[i] = sp.Name
		}
	}
	for _, info := range rx.Info {
		rs.PathwayNames = append(rs.PathwayNames, info.Name)
	}
	for _, c := range rx.Clamps {
		rs.Clamps = append(rs.Clamps, ClampSnapshot{
			Molecule:      c.Molecule.Name,
			Orientation:   c.Orientation,
			SurfaceClass:  c.SurfaceClass.Name,
			Concentration: c.Concentration,
		})
	}
	return rs
}

// EncodeTableJSON encodes a table snapshot to JSON format.
func EncodeTableJSON(snapshot TableSnapshot) ([]byte, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode table: %w", err)
	}
	return data, nil
}

// DecodeTableJSON decodes a table snapshot from JSON format.
func DecodeTableJSON(data []byte) (TableSnapshot, error) {
	var snapshot TableSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return TableSnapshot{}, fmt.Errorf("failed to decode table: %w", err)
	}
	return snapshot, nil
}
