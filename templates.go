package fbx

// applyTemplates implements the template-defaulting half of L6 (spec §4.7):
// each element's property bag is filled from its (container, sub-type)
// PropertyTemplate, object-local values winning over template defaults.
func applyTemplates(b *sceneBuilder, templates map[templateKey]PropertyBag) {
	for i := range b.elements {
		e := &b.elements[i]
		containerName := containerNameForKind(e.Kind)
		if containerName == "" {
			continue
		}
		if tpl, ok := templates[templateKey{Container: containerName, SubType: e.SubType}]; ok {
			e.Properties.FillMissing(tpl)
		}
	}
}

func containerNameForKind(k ElementKind) string {
	for name, kind := range objectTypeNames {
		if kind == k {
			return name
		}
	}
	switch k {
	case KindSkin, KindCluster, KindBlendShape, KindBlendChannel, KindCacheDeformer:
		return "Deformer"
	case KindLight, KindCamera, KindMarker:
		return "NodeAttribute"
	default:
		return ""
	}
}
