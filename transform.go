package fbx

// resolveTransforms implements L7 (spec §4.9): composes each Model's local
// transform from its Lcl Translation/Rotation/Scaling plus pivot/offset
// properties, then propagates world transforms top-down from the roots,
// honouring each node's InheritMode.
//
// The local transform follows FBX's own pivot chain:
//
//	L = T * Roff * Rp * Rpre * R(order) * Rpost^-1 * Rp^-1 * Soff * Sp * S * Sp^-1
//
// where T/R/S are translation/rotation/scaling, Roff/Soff are the
// rotation/scaling offsets, Rp/Sp the rotation/scaling pivots, and
// Rpre/Rpost the pre/post rotations.
//
// If cfg.UseRootTransform is set, cfg.RootTransform overrides the synthetic
// root node's local (and thus world) transform before propagation, so every
// node in the scene is composed relative to the caller-supplied root rather
// than identity (spec §6 "use_root_transform + root_transform").
func resolveTransforms(b *sceneBuilder, rootIdx ElementIndex, cfg *Config) error {
	for i := range b.elements {
		e := &b.elements[i]
		if e.Kind != KindNode {
			continue
		}
		e.Node.LocalTransform = composeLocalTransform(&e.Properties, e.Node.RotationOrder)
	}

	rootWorld := Identity4()
	if rootIdx != NoElement && int(rootIdx) < len(b.elements) && b.elements[rootIdx].Kind == KindNode {
		if cfg.UseRootTransform {
			b.elements[rootIdx].Node.LocalTransform = cfg.RootTransform
		}
		rootWorld = b.elements[rootIdx].Node.LocalTransform
		b.elements[rootIdx].Node.WorldTransform = rootWorld
	}

	if err := applyGeometryTransformHandling(b, cfg); err != nil {
		return err
	}

	visited := make([]bool, len(b.elements))
	var walk func(idx ElementIndex, parentWorld Matrix4, parentMode InheritMode)
	walk = func(idx ElementIndex, parentWorld Matrix4, parentMode InheritMode) {
		if idx == NoElement || int(idx) >= len(b.elements) || visited[idx] {
			return
		}
		visited[idx] = true
		e := &b.elements[idx]
		if e.Kind != KindNode {
			return
		}

		e.Node.WorldTransform = composeWorldTransform(parentWorld, e.Node.LocalTransform, e.Node.InheritMode)

		for _, childIdx := range e.Node.Children {
			walk(childIdx, e.Node.WorldTransform, e.Node.InheritMode)
		}
	}

	if rootIdx != NoElement && int(rootIdx) < len(b.elements) && b.elements[rootIdx].Kind == KindNode {
		visited[rootIdx] = true
		for _, childIdx := range b.elements[rootIdx].Node.Children {
			walk(childIdx, rootWorld, InheritNormal)
		}
	} else {
		for i := range b.elements {
			if b.elements[i].Kind == KindNode && b.elements[i].Node.Parent == NoElement {
				walk(ElementIndex(i), Identity4(), InheritNormal)
			}
		}
	}

	return nil
}

// composeLocalTransform builds one node's local matrix from its property
// bag, applying the full pivot chain described above.
func composeLocalTransform(bag *PropertyBag, order RotationOrder) Matrix4 {
	t := propVector3(bag, "Lcl Translation", Vector3{})
	r := propVector3(bag, "Lcl Rotation", Vector3{})
	s := propVector3(bag, "Lcl Scaling", Vector3{X: 1, Y: 1, Z: 1})

	rOff := propVector3(bag, "RotationOffset", Vector3{})
	rPivot := propVector3(bag, "RotationPivot", Vector3{})
	sOff := propVector3(bag, "ScalingOffset", Vector3{})
	sPivot := propVector3(bag, "ScalingPivot", Vector3{})
	preRot := propVector3(bag, "PreRotation", Vector3{})
	postRot := propVector3(bag, "PostRotation", Vector3{})

	tM := Translation4(t)
	roffM := Translation4(rOff)
	rpM := Translation4(rPivot)
	rpInvM, _ := rpM.Invert()
	rpreM := RotationFromQuaternion4(quaternionFromEuler(preRot, order))
	rM := RotationFromQuaternion4(quaternionFromEuler(r, order))
	rpostM := RotationFromQuaternion4(quaternionFromEuler(postRot, order))
	rpostInvM, _ := rpostM.Invert()
	soffM := Translation4(sOff)
	spM := Translation4(sPivot)
	spInvM, _ := spM.Invert()
	sM := Scaling4(s)

	m := tM
	m = m.Multiply(roffM)
	m = m.Multiply(rpM)
	m = m.Multiply(rpreM)
	m = m.Multiply(rM)
	m = m.Multiply(rpostInvM)
	m = m.Multiply(rpInvM)
	m = m.Multiply(soffM)
	m = m.Multiply(spM)
	m = m.Multiply(sM)
	m = m.Multiply(spInvM)
	return m
}

func quaternionFromEuler(eulerDeg Vector3, order RotationOrder) Quaternion {
	return fromEulerDeg(eulerDeg, order)
}

// composeWorldTransform propagates a parent world transform to a child's
// local transform, respecting inherit-scale mode (spec §4.9).
func composeWorldTransform(parentWorld, local Matrix4, mode InheritMode) Matrix4 {
	switch mode {
	case InheritNoScale:
		_, parentRot, _ := Decompose4(parentWorld)
		parentPos := Vector3{X: parentWorld[12], Y: parentWorld[13], Z: parentWorld[14]}
		noScaleParent := Compose(parentPos, parentRot, Vector3{X: 1, Y: 1, Z: 1})
		return noScaleParent.Multiply(local)
	case InheritNoScaleShear:
		parentPos, parentRot, parentScale := Decompose4(parentWorld)
		rigid := Compose(parentPos, parentRot, Vector3{X: 1, Y: 1, Z: 1})
		scaleOnly := Scaling4(parentScale)
		return rigid.Multiply(scaleOnly).Multiply(local)
	default:
		return parentWorld.Multiply(local)
	}
}

// applyGeometryTransformHandling resolves each mesh-bearing node's
// GeometryTransform per cfg.GeometryTransformHandling (spec §4.9): either
// left to be applied by the renderer (Preserve), folded into a synthetic
// child helper node (HelperNodes), or baked directly into the mesh's vertex
// data (ModifyGeometry / ModifyGeometryNoFallback).
func applyGeometryTransformHandling(b *sceneBuilder, cfg *Config) error {
	n := len(b.elements)
	for i := 0; i < n; i++ {
		e := &b.elements[i]
		if e.Kind != KindNode || e.Node.Attribute == NoElement {
			continue
		}
		attrIdx := e.Node.Attribute
		attr := &b.elements[attrIdx]
		if attr.Kind != KindMesh {
			continue
		}

		geomT := propVector3(&e.Properties, "GeometricTranslation", Vector3{})
		geomR := propVector3(&e.Properties, "GeometricRotation", Vector3{})
		geomS := propVector3(&e.Properties, "GeometricScaling", Vector3{X: 1, Y: 1, Z: 1})
		if geomT == (Vector3{}) && geomR == (Vector3{}) && geomS == (Vector3{X: 1, Y: 1, Z: 1}) {
			continue
		}
		gm := Compose(geomT, quaternionFromEuler(geomR, e.Node.RotationOrder), geomS)

		switch cfg.GeometryTransformHandling {
		case GeomTransformModifyGeometry, GeomTransformModifyGeometryNoFallback:
			bakeGeometryTransform(attr.Mesh, gm)
		case GeomTransformHelperNodes:
			nodeIdx := ElementIndex(i)
			helperIdx := b.add(Element{
				Kind: KindNode, Name: e.Name + "_GeometryTransform",
				Properties: NewPropertyBag(),
				Node: &NodeExt{
					Parent: nodeIdx, Attribute: attrIdx, HelperFor: nodeIdx,
					LocalTransform: gm, WorldTransform: Identity4(),
					GeometryTransform: Identity4(),
				},
			})
			e = &b.elements[i]
			e.Node.Attribute = NoElement
			e.Node.GeometryTransform = Identity4()
			e.Node.Children = append(e.Node.Children, helperIdx)
		default:
			e.Node.GeometryTransform = gm
		}
	}
	return nil
}

// bakeGeometryTransform applies gm to vertex positions directly, but to
// normals via its inverse-transpose (spec §4.9), so a non-uniform
// GeometricScaling doesn't skew normal directions the way the plain matrix
// would. A singular gm (degenerate scale) falls back to the plain matrix,
// matching transformDirection's no-renormalize contract elsewhere.
func bakeGeometryTransform(mesh *MeshExt, gm Matrix4) {
	if mesh == nil {
		return
	}
	normalMatrix := gm
	if inv, ok := gm.Invert(); ok {
		normalMatrix = inv.Transpose()
	}
	for i, v := range mesh.Vertices {
		mesh.Vertices[i] = transformPoint(gm, v)
	}
	for i, n := range mesh.Normals {
		mesh.Normals[i] = transformDirection(normalMatrix, n)
	}
}

func transformPoint(m Matrix4, v Vector3) Vector3 {
	x := m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]
	y := m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]
	z := m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]
	return Vector3{X: x, Y: y, Z: z}
}

// transformDirection applies m's linear part (no translation) to v, for
// normals. Non-uniform scale callers care about will have already gone
// through Decompose elsewhere; this baking step intentionally does not
// renormalize, matching how the geometry-transform bake is a one-time
// authoring-time operation rather than a per-frame render step.
func transformDirection(m Matrix4, v Vector3) Vector3 {
	x := m[0]*v.X + m[4]*v.Y + m[8]*v.Z
	y := m[1]*v.X + m[5]*v.Y + m[9]*v.Z
	z := m[2]*v.X + m[6]*v.Y + m[10]*v.Z
	return Vector3{X: x, Y: y, Z: z}
}
