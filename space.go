package fbx

// applySpaceConversion implements L8 (spec §4.10): converts the scene's
// axis system and unit scale to cfg.TargetAxes/TargetUnitMeters according to
// cfg.SpaceConversion, and applies a handedness mirror if
// cfg.HandednessConversionAxis is set.
//
// SpaceConversionNone leaves every transform as authored. TransformRoot
// multiplies a single correction matrix into the scene's root transform
// (cheapest, but means non-root nodes still carry the file's original
// convention internally). AdjustTransforms multiplies the correction into
// the local transform of each node directly under the root, leaving the
// root's own transform unchanged. Both modes also update the world
// transforms resolveTransforms already computed, so they reflect the
// correction. ModifyGeometry goes further and bakes the correction into every mesh's
// vertex/normal arrays, leaving node transforms untouched.
func applySpaceConversion(b *sceneBuilder, rootIdx ElementIndex, settings *GlobalSettings, cfg *Config) error {
	if cfg.SpaceConversion == SpaceConversionNone && cfg.HandednessConversionAxis == AxisNone {
		return nil
	}

	targetAxes := cfg.TargetAxes
	if targetAxes == (AxisSystem{}) {
		targetAxes = settings.Axes
	}
	targetUnit := cfg.TargetUnitMeters
	if targetUnit == 0 {
		targetUnit = settings.OriginalUnitMeters
	}

	correction := axisCorrectionMatrix(settings.Axes, targetAxes)
	unitScale := 1.0
	if settings.OriginalUnitMeters != 0 && targetUnit != 0 {
		unitScale = settings.OriginalUnitMeters / targetUnit
	}
	correction = correction.Multiply(Scaling4(Vector3{X: unitScale, Y: unitScale, Z: unitScale}))

	if cfg.HandednessConversionAxis != AxisNone {
		correction = correction.Multiply(mirrorMatrix(cfg.HandednessConversionAxis))
	}

	switch cfg.SpaceConversion {
	case SpaceTransformRoot:
		if rootIdx != NoElement && int(rootIdx) < len(b.elements) && b.elements[rootIdx].Kind == KindNode {
			b.elements[rootIdx].Node.LocalTransform = correction.Multiply(b.elements[rootIdx].Node.LocalTransform)
			for i := range b.elements {
				if b.elements[i].Kind == KindNode {
					b.elements[i].Node.WorldTransform = correction.Multiply(b.elements[i].Node.WorldTransform)
				}
			}
		}
	case SpaceAdjustTransforms:
		worldCorrection := correction
		if rootIdx != NoElement && int(rootIdx) < len(b.elements) && b.elements[rootIdx].Kind == KindNode {
			rootWorld := b.elements[rootIdx].Node.WorldTransform
			if inv, ok := rootWorld.Invert(); ok {
				worldCorrection = rootWorld.Multiply(correction).Multiply(inv)
			}
		}
		for i := range b.elements {
			if b.elements[i].Kind != KindNode || ElementIndex(i) == rootIdx {
				continue
			}
			if b.elements[i].Node.Parent == rootIdx {
				b.elements[i].Node.LocalTransform = correction.Multiply(b.elements[i].Node.LocalTransform)
			}
			b.elements[i].Node.WorldTransform = worldCorrection.Multiply(b.elements[i].Node.WorldTransform)
		}
	case SpaceModifyGeometry:
		for i := range b.elements {
			if b.elements[i].Kind == KindMesh {
				bakeGeometryTransform(b.elements[i].Mesh, correction)
			}
		}
	}

	settings.Axes = targetAxes
	settings.TargetUnitMeters = targetUnit
	return nil
}

// axisCorrectionMatrix builds the rotation that maps from's axis
// convention onto to's, by permuting/signing basis columns.
func axisCorrectionMatrix(from, to AxisSystem) Matrix4 {
	fromUp, fromFront := basisVector(from.Up), basisVector(from.Front)

	toUp, toFront := basisVector(to.Up), basisVector(to.Front)
	toCoord := toUp.Cross(toFront)

	var m Matrix4
	setColumn(&m, 0, toCoord)
	setColumn(&m, 1, toUp)
	setColumn(&m, 2, toFront)
	m[15] = 1

	fromM := Identity4()
	setColumn(&fromM, 0, basisVector(from.Coord))
	setColumn(&fromM, 1, fromUp)
	setColumn(&fromM, 2, fromFront)
	fromM[15] = 1

	fromInv, ok := fromM.Invert()
	if !ok {
		return Identity4()
	}
	return m.Multiply(fromInv)
}

func setColumn(m *Matrix4, col int, v Vector3) {
	m[4*col] = v.X
	m[4*col+1] = v.Y
	m[4*col+2] = v.Z
}

func basisVector(a Axis) Vector3 {
	v := Vector3{}
	switch a.Index {
	case 0:
		v.X = 1
	case 1:
		v.Y = 1
	default:
		v.Z = 1
	}
	if a.Sign < 0 {
		v = v.Negate()
	}
	return v
}

// mirrorMatrix flips the named axis, used for left/right-handed conversion
// (spec §4.10).
func mirrorMatrix(axis HandednessAxis) Matrix4 {
	m := Identity4()
	switch axis {
	case AxisX:
		m[0] = -1
	case AxisY:
		m[5] = -1
	case AxisZ:
		m[10] = -1
	}
	return m
}
