package fbx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAxisCorrectionMatrixIdentityWhenUnchanged(t *testing.T) {
	axes := DefaultAxisSystem()
	m := axisCorrectionMatrix(axes, axes)
	id := Identity4()
	for i := range m {
		assert.InDelta(t, id[i], m[i], 1e-9)
	}
}

func TestAxisCorrectionMatrixSwapsUpAndFront(t *testing.T) {
	from := DefaultAxisSystem() // Up=+Y, Front=+Z, Coord=+X
	to := AxisSystem{
		Up:    Axis{Index: 2, Sign: 1}, // +Z
		Front: Axis{Index: 1, Sign: 1}, // +Y
	}
	m := axisCorrectionMatrix(from, to)
	v := transformPoint(m, Vector3{X: 1, Y: 2, Z: 3})
	assert.InDelta(t, -1.0, v.X, 1e-9)
	assert.InDelta(t, 3.0, v.Y, 1e-9, "old front (Z) becomes new up-swapped front (Y)")
	assert.InDelta(t, 2.0, v.Z, 1e-9, "old up (Y) becomes new up axis (Z)")
}

func TestMirrorMatrixFlipsOnlyNamedAxis(t *testing.T) {
	m := mirrorMatrix(AxisX)
	v := transformPoint(m, Vector3{X: 1, Y: 1, Z: 1})
	assert.Equal(t, Vector3{X: -1, Y: 1, Z: 1}, v)

	m = mirrorMatrix(AxisNone)
	id := Identity4()
	for i := range m {
		assert.InDelta(t, id[i], m[i], 1e-9)
	}
}

func TestApplySpaceConversionNoneIsANoOp(t *testing.T) {
	b := newSceneBuilder()
	rootIdx := b.add(newNodeElement(0, "Root"))
	b.elements[rootIdx].Node.LocalTransform = Translation4(Vector3{X: 5, Y: 0, Z: 0})
	settings := GlobalSettings{Axes: DefaultAxisSystem(), OriginalUnitMeters: 0.01}

	err := applySpaceConversion(b, rootIdx, &settings, &Config{})
	assert.NoError(t, err)
	assert.InDelta(t, 5.0, b.elements[rootIdx].Node.LocalTransform[12], 1e-9)
}

func TestApplySpaceConversionTransformRootAppliesUnitScale(t *testing.T) {
	b := newSceneBuilder()
	rootIdx := b.add(newNodeElement(0, "Root"))
	b.elements[rootIdx].Node.LocalTransform = Translation4(Vector3{X: 5, Y: 0, Z: 0})
	settings := GlobalSettings{Axes: DefaultAxisSystem(), OriginalUnitMeters: 0.01}

	cfg := &Config{SpaceConversion: SpaceTransformRoot, TargetUnitMeters: 1.0}
	err := applySpaceConversion(b, rootIdx, &settings, cfg)
	assert.NoError(t, err)
	assert.InDelta(t, 0.05, b.elements[rootIdx].Node.LocalTransform[12], 1e-6, "1cm-per-unit file converted to 1-meter-per-unit scales translations by 1/100")
	assert.Equal(t, 1.0, settings.TargetUnitMeters)
}

func TestApplySpaceConversionModifyGeometryBakesIntoMeshes(t *testing.T) {
	b := newSceneBuilder()
	rootIdx := b.add(newNodeElement(0, "Root"))
	meshIdx := b.add(Element{ID: 1, Kind: KindMesh, Properties: NewPropertyBag(), Mesh: &MeshExt{Vertices: []Vector3{{X: 1, Y: 0, Z: 0}}}})
	settings := GlobalSettings{Axes: DefaultAxisSystem(), OriginalUnitMeters: 1.0}

	cfg := &Config{SpaceConversion: SpaceModifyGeometry, HandednessConversionAxis: AxisX, TargetUnitMeters: 1.0}
	err := applySpaceConversion(b, rootIdx, &settings, cfg)
	assert.NoError(t, err)
	assert.InDelta(t, -1.0, b.elements[meshIdx].Mesh.Vertices[0].X, 1e-9)
}
