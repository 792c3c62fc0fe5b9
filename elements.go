package fbx

// ElementKind is the discriminant spec §9 calls for: a single element
// record type with per-kind extension fields (NodeExt, MeshExt, ...)
// rather than open-ended inheritance, so connections can be navigated by
// plain index lookups without virtual dispatch.
type ElementKind int

const (
	KindUnknown ElementKind = iota
	KindNode               // a Model object: a transform in the scene graph
	KindMesh
	KindLight
	KindCamera
	KindMaterial
	KindTexture
	KindVideo
	KindSkin
	KindCluster
	KindBlendChannel
	KindBlendShape
	KindAnimStack
	KindAnimLayer
	KindAnimCurveNode
	KindAnimCurve
	KindNodeAttribute
	KindConstraint
	KindPose
	KindSelectionSet
	KindSelectionNode
	KindDisplayLayer
	KindCacheFile
	KindCacheDeformer
	KindAudioLayer
	KindAudioClip
	KindMarker
)

func (k ElementKind) String() string {
	names := map[ElementKind]string{
		KindUnknown: "Unknown", KindNode: "Node", KindMesh: "Mesh", KindLight: "Light",
		KindCamera: "Camera", KindMaterial: "Material", KindTexture: "Texture", KindVideo: "Video",
		KindSkin: "Skin", KindCluster: "Cluster", KindBlendChannel: "BlendChannel", KindBlendShape: "BlendShape",
		KindAnimStack: "AnimStack", KindAnimLayer: "AnimLayer", KindAnimCurveNode: "AnimCurveNode",
		KindAnimCurve: "AnimCurve", KindNodeAttribute: "NodeAttribute", KindConstraint: "Constraint",
		KindPose: "Pose", KindSelectionSet: "SelectionSet", KindSelectionNode: "SelectionNode",
		KindDisplayLayer: "DisplayLayer", KindCacheFile: "CacheFile", KindCacheDeformer: "CacheDeformer",
		KindAudioLayer: "AudioLayer", KindAudioClip: "AudioClip", KindMarker: "Marker",
	}
	if s, ok := names[k]; ok {
		return s
	}
	return "Unknown"
}

// objectTypeNames maps the literal FBX "Objects/<Kind>" container name to
// an ElementKind. A handful of container names cover more than one logical
// kind (e.g. "NodeAttribute" covers lights/cameras/generic attributes by
// sub-type, "Deformer" covers Skin/BlendChannel/Cluster by sub-type); those
// are resolved in classifyObject using the sub-type string too.
var objectTypeNames = map[string]ElementKind{
	"Model":          KindNode,
	"Geometry":       KindMesh,
	"Material":       KindMaterial,
	"Texture":        KindTexture,
	"Video":          KindVideo,
	"AnimationStack": KindAnimStack,
	"AnimationLayer": KindAnimLayer,
	"AnimationCurveNode": KindAnimCurveNode,
	"AnimationCurve": KindAnimCurve,
	"NodeAttribute":  KindNodeAttribute,
	"Constraint":     KindConstraint,
	"Pose":           KindPose,
	"SelectionSet":   KindSelectionSet,
	"SelectionNode":  KindSelectionNode,
	"DisplayLayer":   KindDisplayLayer,
	"CacheFile":      KindCacheFile,
	"AudioLayer":     KindAudioLayer,
	"AudioClip":      KindAudioClip,
}

func classifyObject(containerName, subType string) ElementKind {
	switch containerName {
	case "Deformer":
		switch subType {
		case "Skin":
			return KindSkin
		case "Cluster":
			return KindCluster
		case "BlendShape":
			return KindBlendShape
		case "BlendShapeChannel":
			return KindBlendChannel
		default:
			return KindCacheDeformer
		}
	case "NodeAttribute":
		switch subType {
		case "Light":
			return KindLight
		case "Camera":
			return KindCamera
		case "Marker":
			return KindMarker
		default:
			return KindNodeAttribute
		}
	}
	if k, ok := objectTypeNames[containerName]; ok {
		return k
	}
	return KindUnknown
}

// ElementIndex is a non-owning arena reference into Scene.Elements (spec
// §9 "Cyclic references": parent/child and target/constraint links cycle
// naturally, so every reference besides the owning array is an index, not
// a pointer).
type ElementIndex int32

// NoElement is the sentinel (-1) for an absent/unresolved reference; it is
// not ElementIndex's zero value.
const NoElement ElementIndex = -1

// NodeExt carries the scene-graph-transform fields specific to a Model
// object (ElementKind == KindNode).
type NodeExt struct {
	Parent   ElementIndex
	Children []ElementIndex
	Attribute ElementIndex // the NodeAttribute/Light/Camera/Mesh this node wears, if any

	LocalTransform Matrix4
	WorldTransform Matrix4

	GeometryTransform Matrix4 // identity unless GeomTransformPreserve leaves it non-identity
	InheritMode       InheritMode
	RotationOrder     RotationOrder

	HelperFor ElementIndex // NoElement unless this node is a synthetic helper inserted for geometry-transform or inherit-mode handling
}

// InheritMode controls whether a node's world transform composes its
// parent's scale (spec §4.9).
type InheritMode int

const (
	InheritNormal InheritMode = iota
	InheritNoScale
	InheritNoScaleShear
)

// MeshExt carries mesh-specific geometry arrays (ElementKind == KindMesh).
type MeshExt struct {
	Vertices          []Vector3
	PolygonVertexIndex []int32 // raw, XOR-encoded face boundaries as stored
	Normals           []Vector3
	UVs               [][2]float64
	MaterialIndices   []int32

	FaceCount int
}

// AnimCurveExt carries keyframe data (ElementKind == KindAnimCurve).
type AnimCurveExt struct {
	KeyTimes  []int64 // FBX time units (1/46186158000 second)
	KeyValues []float64
}

// VideoExt carries an embedded texture payload (ElementKind == KindVideo).
type VideoExt struct {
	RelativeFilename string
	Content          EmbeddedContent
}

// Element is the single polymorphic object record spec §9 calls for: a
// common identity/property-bag/connection base plus at most one non-nil
// extension pointer selected by Kind.
type Element struct {
	Self    ElementIndex
	ID      int64
	Kind    ElementKind
	Name    string
	SubType string

	Properties PropertyBag

	// ConnectedSources holds, in declaration order, every element that is
	// the *source* of an object-to-object connection whose destination is
	// this element (spec §4.8: "index 0 is the first-declared source").
	ConnectedSources []ElementIndex
	ConnectedDests   []ElementIndex

	Node  *NodeExt
	Mesh  *MeshExt
	Curve *AnimCurveExt
	Video *VideoExt
}
