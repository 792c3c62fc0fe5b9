// Package fbx reads FBX scene files (binary or ASCII) into a typed, fully
// resolved Scene graph: objects classified by kind, parent/child and
// property connections followed, pivot-chain transforms composed into world
// matrices, and the scene's coordinate/unit convention optionally converted
// to a caller-chosen target.
//
// Writing FBX files is out of scope; EncodeBinary exists only to serialise
// an already-parsed node tree back to the binary envelope for round-trip
// testing.
package fbx

import "io"

// Load parses data as either binary or ASCII FBX (auto-detected unless
// cfg.FileFormat forces one) and resolves it into a Scene (spec §3, the
// full L0-L9 pipeline).
func Load(data []byte, cfg *Config) (*Scene, error) {
	if cfg == nil {
		c := DefaultConfig()
		cfg = &c
	}
	if len(data) == 0 {
		return nil, newError(ErrEmptyFile, "input is empty")
	}

	paths := newPathStack(cfg.PathStackDepth)

	format := cfg.FileFormat
	if format == FormatAuto {
		format = detectFormat(data, cfg.FileFormatLookahead)
	}
	isBinary := format == FormatBinary

	var (
		domRoot *RawNode
		version int32
		err     error
	)
	if isBinary {
		domRoot, version, err = parseBinary(data, paths)
	} else {
		domRoot, version, err = parseASCII(data, paths)
	}
	if err != nil {
		return nil, err
	}

	objResult, err := readObjects(domRoot, cfg, paths)
	if err != nil {
		return nil, err
	}

	applyTemplates(objResult.builder, objResult.templates)

	rootIdx := objResult.builder.add(Element{
		ID: 0, Kind: KindNode, Name: "RootNode",
		Properties: NewPropertyBag(),
		Node: &NodeExt{
			Parent: NoElement, Attribute: NoElement, HelperFor: NoElement,
			LocalTransform: Identity4(), WorldTransform: Identity4(),
			GeometryTransform: Identity4(),
		},
	})

	if err := resolveConnections(objResult, rootIdx, cfg, paths); err != nil {
		return nil, err
	}

	if err := resolveTransforms(objResult.builder, rootIdx, cfg); err != nil {
		return nil, err
	}

	if err := applySpaceConversion(objResult.builder, rootIdx, &objResult.settings, cfg); err != nil {
		return nil, err
	}

	meta := SceneMetadata{
		Creator:               objResult.creator,
		CreationTime:          objResult.creationTime,
		Version:               version,
		IsBinary:              isBinary,
		LittleEndian:          true,
		LegacySyntheticIDs:    objResult.legacyIDs,
		BrokenConnectionCount: objResult.builder.BrokenConnections,
	}

	var retained *RawNode
	if cfg.RetainDOM {
		retained = domRoot
	}

	return objResult.builder.finalize(rootIdx, objResult.settings, meta, retained), nil
}

// LoadReader drains r (honouring cfg.ProgressCB) and calls Load.
func LoadReader(r io.Reader, cfg *Config) (*Scene, error) {
	rc, ok := r.(io.ReadCloser)
	if !ok {
		rc = io.NopCloser(r)
	}
	var progress ProgressFunc
	var bufSize int
	if cfg != nil {
		progress = cfg.ProgressCB
		bufSize = cfg.ReadBufferSize
	}
	data, err := readAll(NewStreamSource(rc), progress, 0, bufSize)
	if err != nil {
		return nil, err
	}
	return Load(data, cfg)
}

// LoadFile opens path (via the platform ByteSource in source_unix.go /
// source_other.go) and calls Load.
func LoadFile(path string, cfg *Config) (*Scene, error) {
	src, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	var progress ProgressFunc
	var bufSize int
	if cfg != nil {
		progress = cfg.ProgressCB
		bufSize = cfg.ReadBufferSize
	}
	var total int64
	if sz, ok := src.(Sizer); ok {
		total, _ = sz.Size()
	}
	data, err := readAll(src, progress, total, bufSize)
	if err != nil {
		return nil, err
	}
	return Load(data, cfg)
}

// detectFormat reports which dialect data appears to be without fully
// parsing it, honouring cfg.FileFormatLookahead as the number of leading
// bytes consulted.
func detectFormat(data []byte, lookahead int) FileFormat {
	if lookahead <= 0 || lookahead > len(data) {
		lookahead = len(data)
	}
	if looksBinary(data[:lookahead]) {
		return FormatBinary
	}
	return FormatASCII
}
