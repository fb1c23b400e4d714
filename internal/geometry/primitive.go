package geometry

// Role is the semantic tag of a primitive.
type Role string

// Main building roles.
const (
	RoleColumn    Role = "column"
	RoleRafter    Role = "rafter"
	RoleEaveBeam  Role = "eave_beam"
	RoleKneeBrace Role = "knee_brace"
	RolePurlin    Role = "purlin"
	RoleGirt      Role = "girt"
	RoleWallPanel Role = "wall_panel"
	RoleRoofPanel Role = "roof_panel"
	RoleTrim      Role = "trim"
	RoleWainscot  Role = "wainscot"
	RoleOpening   Role = "opening"
	RoleRidgeVent Role = "ridge_vent"
	RoleCupola    Role = "cupola"
)

// Lean-to roles.
const (
	RoleLeanToColumn Role = "leanto_column"
	RoleLeanToRafter Role = "leanto_rafter"
	RoleLeanToBeam   Role = "leanto_beam"
	RoleLeanToPurlin Role = "leanto_purlin"
	RoleLeanToWall   Role = "leanto_wall"
	RoleLeanToRoof   Role = "leanto_roof"
	RoleLeanToTrim   Role = "leanto_trim"
)

// Layer groups primitives for visibility gating. Trim takes the layer of
// the surface it finishes: roof edges on LayerRoof, corners on LayerWalls.
type Layer string

const (
	// LayerPrimary holds columns, rafters, eave beams and knee braces.
	// It is never hidden.
	LayerPrimary   Layer = "primary"
	LayerSecondary Layer = "secondary"
	LayerWalls     Layer = "walls"
	LayerRoof      Layer = "roof"
	LayerOpenings  Layer = "openings"
)

// ColorSlot names the palette entry a primitive is painted with.
type ColorSlot string

const (
	ColorNone     ColorSlot = ""
	ColorRoof     ColorSlot = "roof"
	ColorWall     ColorSlot = "wall"
	ColorTrim     ColorSlot = "trim"
	ColorWainscot ColorSlot = "wainscot"
	ColorSteel    ColorSlot = "steel"
)

// Box is an oriented box. Size is measured along the local axes held in Axes.
type Box struct {
	Center   Vec3 `json:"center"`
	Size     Vec3 `json:"size"`
	Axes     Mat3 `json:"axes"`
	Rotation Vec3 `json:"rotation"`
}

// NewBox returns an oriented box, filling Rotation from the axes.
func NewBox(center, size Vec3, axes Mat3) Box {
	return Box{Center: center, Size: size, Axes: axes, Rotation: axes.Euler()}
}

// AxisBox returns an axis-aligned box.
func AxisBox(center, size Vec3) Box {
	return NewBox(center, size, Identity())
}

// Mesh is an indexed triangle mesh with one UV per vertex.
type Mesh struct {
	Vertices []Vec3 `json:"vertices"`
	UVs      []Vec2 `json:"uvs"`
	Indices  []int  `json:"indices"`
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Primitive is one positioned, tagged piece of geometry.
// Exactly one of Box or Mesh is set.
type Primitive struct {
	ID    string    `json:"id"`
	Role  Role      `json:"role"`
	Layer Layer     `json:"layer"`
	Color ColorSlot `json:"color,omitempty"`
	Box   *Box      `json:"box,omitempty"`
	Mesh  *Mesh     `json:"mesh,omitempty"`
}

// BoxPrimitive wraps a box in a primitive.
func BoxPrimitive(id string, role Role, layer Layer, color ColorSlot, b Box) Primitive {
	return Primitive{ID: id, Role: role, Layer: layer, Color: color, Box: &b}
}

// MeshPrimitive wraps a mesh in a primitive.
func MeshPrimitive(id string, role Role, layer Layer, color ColorSlot, m *Mesh) Primitive {
	return Primitive{ID: id, Role: role, Layer: layer, Color: color, Mesh: m}
}
