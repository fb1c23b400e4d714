// Package geometry defines the positioned primitives emitted by the
// derivation engine: oriented boxes for structural members and triangulated
// meshes with UVs for panels.
//
// Every primitive carries a semantic Role and a visibility Layer so the
// renderer never has to re-derive a layout decision. Colors are referenced
// by slot rather than value, which keeps a color change from touching any
// derived geometry.
//
// Conventions:
//   - Y is up; the footprint is centered on the origin
//   - X spans the building width, Z spans the length
//   - South is +Z, east is +X
//
// All types are plain values. Primitives returned from shared caches must be
// treated as read-only.
package geometry
