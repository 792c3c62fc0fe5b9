package fbx

// resolveConnections implements L6 (spec §4.8): walks the raw Connections
// list, appends each edge's two ends to ConnectedSources/ConnectedDests in
// declaration order, and additionally wires up the scene-graph parent/child
// relationship (OO connections where the destination is a Model, or the
// implicit root), the node-attribute binding (OO where a NodeAttribute
// connects to a Model), and property/anim-curve-node bindings (OP, PP).
//
// Connections naming an id absent from the id map are "broken". Strict mode
// always promotes this to a load error. Otherwise, if cfg.ConnectBrokenElements
// is set the connection is retained: its resolvable end records the other
// as NoElement (the sentinel) and b.BrokenConnections is incremented; if it
// is not set the connection is dropped silently (spec §4.8/§6).
func resolveConnections(res *objectReaderResult, rootIdx ElementIndex, cfg *Config, paths *pathStack) error {
	b := res.builder

	for _, rc := range res.connections {
		srcIdx, srcOK := lookupConnectionEnd(b, rc.SourceID, rootIdx)
		dstIdx, dstOK := lookupConnectionEnd(b, rc.DestID, rootIdx)

		if !srcOK || !dstOK {
			if cfg.Strict {
				return paths.annotate(newError(ErrMissingObject,
					"connection %s references unknown id (src=%d dst=%d)", rc.Kind, rc.SourceID, rc.DestID))
			}
			if !cfg.ConnectBrokenElements {
				continue
			}
			b.BrokenConnections++
			if dstOK {
				b.elements[dstIdx].ConnectedSources = append(b.elements[dstIdx].ConnectedSources, NoElement)
			}
			if srcOK {
				b.elements[srcIdx].ConnectedDests = append(b.elements[srcIdx].ConnectedDests, NoElement)
			}
			continue
		}

		switch rc.Kind {
		case "OO":
			b.elements[dstIdx].ConnectedSources = append(b.elements[dstIdx].ConnectedSources, srcIdx)
			b.elements[srcIdx].ConnectedDests = append(b.elements[srcIdx].ConnectedDests, dstIdx)
			if err := wireObjectObject(b, srcIdx, dstIdx, cfg); err != nil {
				return paths.annotate(err.(*Error))
			}
		case "OP":
			b.elements[dstIdx].ConnectedSources = append(b.elements[dstIdx].ConnectedSources, srcIdx)
			b.elements[srcIdx].ConnectedDests = append(b.elements[srcIdx].ConnectedDests, dstIdx)
			bindPropertySource(b, dstIdx, rc.DestProp, srcIdx)
		case "PO":
			b.elements[dstIdx].ConnectedSources = append(b.elements[dstIdx].ConnectedSources, srcIdx)
			b.elements[srcIdx].ConnectedDests = append(b.elements[srcIdx].ConnectedDests, dstIdx)
		case "PP":
			b.elements[dstIdx].ConnectedSources = append(b.elements[dstIdx].ConnectedSources, srcIdx)
			b.elements[srcIdx].ConnectedDests = append(b.elements[srcIdx].ConnectedDests, dstIdx)
			bindPropertySource(b, dstIdx, rc.DestProp, srcIdx)
		}
	}

	return detectNodeCycles(b, rootIdx)
}

func lookupConnectionEnd(b *sceneBuilder, id int64, rootIdx ElementIndex) (ElementIndex, bool) {
	if id == 0 {
		return rootIdx, rootIdx != NoElement
	}
	idx, ok := b.byID[id]
	return idx, ok
}

// wireObjectObject applies an OO connection's scene-graph meaning: Model
// parented under Model/root builds the Node tree; a NodeAttribute (or
// Mesh/Light/Camera acting as one) connected to a Model sets Node.Attribute;
// Deformer chains (Skin->Mesh, Cluster->Skin) are left as plain
// ConnectedSources/Dests links, since mesh.go/anim.go consumers walk those
// directly rather than needing a dedicated field.
func wireObjectObject(b *sceneBuilder, srcIdx, dstIdx ElementIndex, cfg *Config) error {
	src, dst := &b.elements[srcIdx], &b.elements[dstIdx]

	if src.Kind == KindNode && (dst.Kind == KindNode) {
		if src.Node.Parent != NoElement && !cfg.AllowNodesOutOfRoot {
			return newError(ErrMalformedBinary, "node %q already has a parent", src.Name)
		}
		src.Node.Parent = dstIdx
		dst.Node.Children = append(dst.Node.Children, srcIdx)
		return nil
	}

	if dst.Kind == KindNode && isAttributeKind(src.Kind) {
		dst.Node.Attribute = srcIdx
	}

	return nil
}

func isAttributeKind(k ElementKind) bool {
	switch k {
	case KindMesh, KindLight, KindCamera, KindNodeAttribute, KindMarker:
		return true
	default:
		return false
	}
}

// bindPropertySource records that srcIdx (an AnimCurveNode, typically)
// drives dstIdx's property named prop.
func bindPropertySource(b *sceneBuilder, dstIdx ElementIndex, prop string, srcIdx ElementIndex) {
	if prop == "" {
		return
	}
	dst := &b.elements[dstIdx]
	p, ok := dst.Properties.Get(prop)
	if !ok {
		return
	}
	p.AnimCurveNode = srcIdx
	dst.Properties.Set(*p)
}

// detectNodeCycles walks the Model parent chain from every node and reports
// ErrNodeCycle if following Parent links never reaches NoElement/root within
// len(Elements) steps (spec §4.8/§8 edge case: "a node is its own
// ancestor"). Unconditional: there is no strict-mode carve-out, a cycle
// always fails the load.
func detectNodeCycles(b *sceneBuilder, rootIdx ElementIndex) error {
	limit := len(b.elements) + 1
	for i := range b.elements {
		if b.elements[i].Kind != KindNode {
			continue
		}
		cur := ElementIndex(i)
		steps := 0
		for cur != NoElement && cur != rootIdx {
			cur = b.elements[cur].Node.Parent
			steps++
			if steps > limit {
				return newError(ErrNodeCycle, "cycle detected in ancestor chain of node %q", b.elements[i].Name)
			}
		}
	}
	return nil
}
