package export

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nerrad567/steelframe-core/internal/building"
	"github.com/nerrad567/steelframe-core/internal/geometry"
	"github.com/nerrad567/steelframe-core/internal/scene"
)

func testReport(t *testing.T) Report {
	t.Helper()
	cfg := building.Default()
	cfg.Openings = []building.Opening{{
		ID: "door-1", Type: building.OpeningWalkDoor, Wall: building.SideSouth,
		Position: 4, Width: 3, Height: 7,
	}}
	b, err := scene.NewBuilder(4)
	require.NoError(t, err)
	return Report{
		Name:      "Shop",
		Config:    cfg,
		Scene:     b.BuildAll(cfg),
		Generated: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSchedule(t *testing.T) {
	prims := []geometry.Primitive{
		geometry.BoxPrimitive("p1", geometry.RolePurlin, geometry.LayerSecondary, geometry.ColorSteel, geometry.AxisBox(geometry.Vec3{}, geometry.V3(40, 0.5, 0.3))),
		geometry.BoxPrimitive("c1", geometry.RoleColumn, geometry.LayerPrimary, geometry.ColorSteel, geometry.AxisBox(geometry.Vec3{}, geometry.V3(10, 1, 1))),
		geometry.MeshPrimitive("r1", geometry.RoleRoofPanel, geometry.LayerRoof, geometry.ColorRoof, geometry.Rect(geometry.Vec3{}, geometry.V3(2, 0, 0), geometry.V3(0, 0, 3))),
		geometry.BoxPrimitive("c2", geometry.RoleColumn, geometry.LayerPrimary, geometry.ColorSteel, geometry.AxisBox(geometry.Vec3{}, geometry.V3(12, 1, 1))),
	}

	rows := Schedule(prims)

	require.Len(t, rows, 3)
	assert.Equal(t, geometry.RoleColumn, rows[0].Role)
	assert.Equal(t, 2, rows[0].Count)
	assert.InDelta(t, 22.0, rows[0].Length, 1e-9)
	assert.Equal(t, geometry.RolePurlin, rows[1].Role)
	assert.Equal(t, geometry.RoleRoofPanel, rows[2].Role)
	assert.InDelta(t, 6.0, rows[2].Area, 1e-9)

	total := Totals(rows)
	assert.Equal(t, 4, total.Count)
	assert.InDelta(t, 62.0, total.Length, 1e-9)
	assert.InDelta(t, 6.0, total.Area, 1e-9)
}

func TestSchedule_Empty(t *testing.T) {
	assert.Empty(t, Schedule(nil))
	assert.Equal(t, Row{}, Totals(nil))
}

func TestSchedule_MatchesSceneCounts(t *testing.T) {
	r := testReport(t)
	for _, row := range Schedule(r.Scene.Primitives) {
		assert.Equal(t, r.Scene.Counts[row.Role], row.Count, string(row.Role))
	}
}

func TestWriteSchedule(t *testing.T) {
	r := testReport(t)
	var buf bytes.Buffer
	require.NoError(t, WriteSchedule(&buf, r))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSchedule, SheetDesign, SheetOpenings}, f.GetSheetList())

	header, err := f.GetCellValue(SheetSchedule, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Role", header)

	first, err := f.GetCellValue(SheetSchedule, "A2")
	require.NoError(t, err)
	assert.Equal(t, string(geometry.RoleColumn), first)

	rows := Schedule(r.Scene.Primitives)
	total, err := f.GetCellValue(SheetSchedule, fmt.Sprintf("A%d", len(rows)+2))
	require.NoError(t, err)
	assert.Equal(t, "Total", total)

	name, err := f.GetCellValue(SheetDesign, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Shop", name)

	id, err := f.GetCellValue(SheetOpenings, "A2")
	require.NoError(t, err)
	assert.Equal(t, "door-1", id)
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, testReport(t)))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 500)
}

func TestWrite_NoDesign(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteSchedule(&buf, Report{}), ErrNoDesign)
	assert.ErrorIs(t, WriteSummary(&buf, Report{}), ErrNoDesign)
	assert.Zero(t, buf.Len())
}

func TestDesignFacts(t *testing.T) {
	r := testReport(t)
	facts := designFacts(r)

	assert.Equal(t, [2]string{"Width", "30.00 ft"}, facts[0])
	assert.Equal(t, [2]string{"Frames", "3 @ 20.00 ft"}, facts[6])
	assert.Equal(t, [2]string{"Openings", "1"}, facts[len(facts)-1])
}
