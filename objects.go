package fbx

import "fmt"

const legacySyntheticIDBase = 0x100000000

// rawConnection is one parsed `C` node from Connections (spec §4.7/§4.8),
// not yet resolved against the element-by-id map.
type rawConnection struct {
	Kind        string // "OO", "OP", "PO", "PP"
	SourceID    int64
	DestID      int64
	SourceProp  string
	DestProp    string
}

// templateKey names a (element kind container, sub-type) pair as declared
// under Definitions/ObjectType/PropertyTemplate (spec §4.7).
type templateKey struct {
	Container string
	SubType   string
}

// objectReaderResult is L5's output: elements (not yet connected),
// unresolved connections, templates for L6 to apply, and the document's
// header/settings metadata.
type objectReaderResult struct {
	builder     *sceneBuilder
	connections []rawConnection
	templates   map[templateKey]PropertyBag
	settings    GlobalSettings
	creator     string
	creationTime string
	legacyIDs   map[string]int64
}

// readObjects implements L5 (spec §4.7): walks FBXHeaderExtension,
// GlobalSettings, Definitions, Objects and Connections, materialising
// typed elements with their property bags. Connection resolution and
// template application proper happen in L6 (connections.go); this layer
// only collects the raw inputs template defaulting and connection
// resolution need.
func readObjects(root *RawNode, cfg *Config, paths *pathStack) (*objectReaderResult, error) {
	res := &objectReaderResult{
		builder:   newSceneBuilder(),
		templates: make(map[templateKey]PropertyBag),
		legacyIDs: make(map[string]int64),
	}

	res.creator, res.creationTime = parseHeaderExtension(root)
	res.settings = parseGlobalSettings(root)

	if defs := root.Child("Definitions"); defs != nil {
		for _, ot := range defs.ChildrenNamed("ObjectType") {
			container, ok := firstString(ot)
			if !ok {
				continue
			}
			for _, pt := range ot.ChildrenNamed("PropertyTemplate") {
				sub, ok := firstString(pt)
				if !ok {
					continue
				}
				bag := parsePropertyBag(pt.Child("Properties70"))
				if bag.Empty() {
					bag = parsePropertyBag(pt.Child("Properties60"))
				}
				res.templates[templateKey{Container: container, SubType: sub}] = bag
			}
		}
	}

	var legacyCounter int64 = legacySyntheticIDBase
	arena := newStringArena()

	if objs := root.Child("Objects"); objs != nil {
		for declIndex, obj := range objs.Children {
			if obj.Name == "" {
				continue
			}
			elem, err := parseObjectNode(obj, declIndex, &legacyCounter, res.legacyIDs, arena, cfg, paths)
			if err != nil {
				return nil, err
			}
			if elem != nil {
				res.builder.add(*elem)
			}
		}
	}

	if conns := root.Child("Connections"); conns != nil {
		for _, c := range conns.ChildrenNamed("C") {
			rc, ok := parseConnectionNode(c)
			if ok {
				res.connections = append(res.connections, rc)
			}
		}
	}

	return res, nil
}

func firstString(n *RawNode) (string, bool) {
	if len(n.Values) == 0 {
		return "", false
	}
	s, err := n.Values[0].String()
	if err != nil {
		return "", false
	}
	return s, true
}

// parseObjectNode parses one `Objects/<Kind>` child into an Element (spec
// §4.7: id, name[::tag], sub-type, Properties70/60, kind-specific data).
func parseObjectNode(obj *RawNode, declIndex int, legacyCounter *int64, legacyIDs map[string]int64, arena *stringArena, cfg *Config, paths *pathStack) (*Element, error) {
	paths.push(obj.Name)
	defer paths.pop()

	var id int64
	var name, subType string

	if len(obj.Values) > 0 {
		if n, err := obj.Values[0].Int64(); err == nil {
			id = n
		}
	}
	if len(obj.Values) > 1 {
		if raw, err := obj.Values[1].Blob(); err == nil {
			name = splitNameClassTag(raw)
		}
	}
	if len(obj.Values) > 2 {
		if s, err := obj.Values[2].String(); err == nil {
			subType = s
		}
	}
	name = arena.intern(name)
	subType = arena.intern(subType)

	if id == 0 {
		key := fmt.Sprintf("%s#%d:%s", obj.Name, declIndex, name)
		id = *legacyCounter
		*legacyCounter++
		legacyIDs[key] = id
	}

	bag := parsePropertyBag(obj.Child("Properties70"))
	if bag.Empty() {
		bag = parsePropertyBag(obj.Child("Properties60"))
	}

	kind := classifyObject(obj.Name, subType)

	elem := &Element{
		ID: id, Kind: kind, Name: name, SubType: subType,
		Properties: bag,
	}

	switch kind {
	case KindNode:
		elem.Node = &NodeExt{
			Parent: NoElement, Attribute: NoElement, HelperFor: NoElement,
			LocalTransform: Identity4(), WorldTransform: Identity4(),
			GeometryTransform: Identity4(),
			RotationOrder:     rotationOrderFromProperty(&bag),
			InheritMode:       inheritModeFromProperty(&bag),
		}
	case KindMesh:
		if !cfg.IgnoreGeometry {
			mesh, err := parseMeshNode(obj, cfg, paths)
			if err != nil {
				return nil, err
			}
			elem.Mesh = mesh
		} else {
			elem.Mesh = &MeshExt{}
		}
	case KindAnimCurve:
		elem.Curve = parseAnimCurveNode(obj)
	case KindVideo:
		if !cfg.IgnoreEmbedded {
			elem.Video = parseVideoNode(obj)
		}
	}

	return elem, nil
}

// parseConnectionNode parses one `C: kind, source, dest[, srcProp][,
// dstProp]` node (spec §4.7: "relation kind ... then source id,
// destination id, and optional property names").
func parseConnectionNode(c *RawNode) (rawConnection, bool) {
	if len(c.Values) < 3 {
		return rawConnection{}, false
	}
	kind, err := c.Values[0].String()
	if err != nil {
		return rawConnection{}, false
	}
	var rc rawConnection
	rc.Kind = kind

	switch kind {
	case "OO":
		src, err1 := c.Values[1].Int64()
		dst, err2 := c.Values[2].Int64()
		if err1 != nil || err2 != nil {
			return rawConnection{}, false
		}
		rc.SourceID, rc.DestID = src, dst
	case "OP":
		src, err1 := c.Values[1].Int64()
		dst, err2 := c.Values[2].Int64()
		if err1 != nil || err2 != nil || len(c.Values) < 4 {
			return rawConnection{}, false
		}
		prop, _ := c.Values[3].String()
		rc.SourceID, rc.DestID, rc.DestProp = src, dst, prop
	case "PO":
		src, err1 := c.Values[1].Int64()
		if err1 != nil || len(c.Values) < 3 {
			return rawConnection{}, false
		}
		dst, err2 := c.Values[2].Int64()
		if err2 != nil {
			return rawConnection{}, false
		}
		rc.SourceID, rc.DestID = src, dst
	case "PP":
		src, err1 := c.Values[1].Int64()
		dst, err2 := c.Values[2].Int64()
		if err1 != nil || err2 != nil || len(c.Values) < 5 {
			return rawConnection{}, false
		}
		srcProp, _ := c.Values[3].String()
		dstProp, _ := c.Values[4].String()
		rc.SourceID, rc.DestID, rc.SourceProp, rc.DestProp = src, dst, srcProp, dstProp
	default:
		return rawConnection{}, false
	}
	return rc, true
}

func rotationOrderFromProperty(bag *PropertyBag) RotationOrder {
	switch propInt(bag, "RotationOrder", 0) {
	case 0:
		return OrderXYZ
	case 1:
		return OrderXZY
	case 2:
		return OrderYZX
	case 3:
		return OrderYXZ
	case 4:
		return OrderZXY
	case 5:
		return OrderZYX
	case 6:
		return OrderSphericXYZ
	default:
		return OrderXYZ
	}
}

func inheritModeFromProperty(bag *PropertyBag) InheritMode {
	switch propInt(bag, "InheritType", 0) {
	case 1:
		return InheritNoScale
	case 2:
		return InheritNoScaleShear
	default:
		return InheritNormal
	}
}
