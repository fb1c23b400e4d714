// Package export renders a derived scene as a member schedule spreadsheet
// and a one-page design summary PDF.
package export

import (
	"sort"

	"github.com/nerrad567/steelframe-core/internal/geometry"
)

// Row is one line of the member schedule: every primitive sharing a role.
// Length sums the long axis of box members; Area sums mesh surfaces.
type Row struct {
	Role   geometry.Role  `json:"role"`
	Layer  geometry.Layer `json:"layer"`
	Count  int            `json:"count"`
	Length float64        `json:"length"`
	Area   float64        `json:"area"`
}

var layerRank = map[geometry.Layer]int{
	geometry.LayerPrimary:   0,
	geometry.LayerSecondary: 1,
	geometry.LayerWalls:     2,
	geometry.LayerRoof:      3,
	geometry.LayerOpenings:  4,
}

// Schedule groups primitives by role. Rows are ordered by layer (primary
// first) then role name.
func Schedule(prims []geometry.Primitive) []Row {
	byRole := make(map[geometry.Role]*Row)
	for _, p := range prims {
		r, ok := byRole[p.Role]
		if !ok {
			r = &Row{Role: p.Role, Layer: p.Layer}
			byRole[p.Role] = r
		}
		r.Count++
		switch {
		case p.Box != nil:
			r.Length += p.Box.Size.X
		case p.Mesh != nil:
			r.Area += p.Mesh.Area()
		}
	}

	rows := make([]Row, 0, len(byRole))
	for _, r := range byRole {
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool {
		ri, rj := layerRank[rows[i].Layer], layerRank[rows[j].Layer]
		if ri != rj {
			return ri < rj
		}
		return rows[i].Role < rows[j].Role
	})
	return rows
}

// Totals sums the count, length and area columns.
func Totals(rows []Row) Row {
	var t Row
	for _, r := range rows {
		t.Count += r.Count
		t.Length += r.Length
		t.Area += r.Area
	}
	return t
}
