package fbx

// FileFormat forces a dialect instead of relying on auto-detection.
type FileFormat int

const (
	FormatAuto FileFormat = iota
	FormatBinary
	FormatASCII
)

// SpaceConversion selects how L8 applies a coordinate/unit change.
type SpaceConversion int

const (
	SpaceConversionNone SpaceConversion = iota
	SpaceTransformRoot
	SpaceAdjustTransforms
	SpaceModifyGeometry
)

// GeometryTransformHandling selects how L7 resolves a node's geometric
// transform (spec §4.9).
type GeometryTransformHandling int

const (
	GeomTransformPreserve GeometryTransformHandling = iota
	GeomTransformHelperNodes
	GeomTransformModifyGeometry
	GeomTransformModifyGeometryNoFallback
)

// InheritModeHandling selects how L7 resolves a node whose inherit-scale
// mode differs from Normal.
type InheritModeHandling int

const (
	InheritHandlingPreserve InheritModeHandling = iota
	InheritHandlingHelperNodes
	InheritHandlingCompensate
	InheritHandlingIgnore
)

// HandednessAxis names the mirror axis a handedness conversion flips.
type HandednessAxis int

const (
	AxisNone HandednessAxis = iota
	AxisX
	AxisY
	AxisZ
)

// IndexErrorHandling selects how an out-of-range mesh index is resolved.
type IndexErrorHandling int

const (
	IndexClamp IndexErrorHandling = iota
	IndexNoIndex
	IndexAbortLoading
)

// OpenFileFunc resolves an externally referenced file (texture content,
// cache payloads) by path. Load does not call Config.OpenFileCB, so files
// a scene references externally are not opened.
type OpenFileFunc func(path string) (ByteSource, error)

// ProgressStatus is returned by a ProgressFunc to continue or cancel a load.
type ProgressStatus int

const (
	ProgressContinue ProgressStatus = iota
	ProgressCancel
)

// ProgressFunc is invoked at configurable byte intervals while consuming
// the byte source (spec §5's cancellation point).
type ProgressFunc func(bytesRead, bytesTotal int64) ProgressStatus

// Config is the loader's configuration record (spec §6 table). All fields
// are value types with zero values acting as sensible defaults; build one
// via DefaultConfig and mutate fields, or via ApplyPreset for a named
// vendor-quirk bundle.
type Config struct {
	FileFormat           FileFormat
	FileFormatLookahead  int
	IgnoreGeometry       bool
	IgnoreAnimation      bool
	IgnoreEmbedded       bool
	ConnectBrokenElements bool
	AllowNodesOutOfRoot  bool
	AllowMissingVertexPosition bool
	AllowEmptyFaces      bool
	Strict               bool
	DisableQuirks        bool

	SpaceConversion           SpaceConversion
	GeometryTransformHandling GeometryTransformHandling
	InheritModeHandling       InheritModeHandling
	HandednessConversionAxis  HandednessAxis
	TargetAxes                AxisSystem
	TargetUnitMeters          float64

	UseRootTransform bool
	RootTransform    Matrix4

	OpenFileCB     OpenFileFunc
	ProgressCB     ProgressFunc
	ReadBufferSize int

	AllocationLimit int // 0 = unlimited; mirrors temp/result allocator limits (spec §5)

	Pool PoolInterface

	IndexErrorHandling IndexErrorHandling
	RetainDOM          bool

	PathStackDepth int
}

// DefaultConfig returns the library's baseline configuration: auto-detect
// dialect, no quirk toggles, no space conversion, a clamping index policy
// (IndexClamp), lenient (non-strict) error handling.
func DefaultConfig() Config {
	return Config{
		FileFormat:          FormatAuto,
		FileFormatLookahead: 4096,
		ReadBufferSize:      4096,
		IndexErrorHandling:  IndexClamp,
		TargetUnitMeters:    0, // 0 means "no unit conversion requested"
		PathStackDepth:      32,
	}
}
