package fbx

import "math"

// noMeshIndexSentinel is the decoded (pre-bit-complement) magnitude
// IndexNoIndex writes in place of an out-of-range vertex index. It is far
// outside any feasible vertex count, so it never collides with a real
// index; consumers that bounds-check against len(Vertices) naturally treat
// it as absent.
const noMeshIndexSentinel int32 = math.MaxInt32

// parseMeshNode reads a Geometry object's vertex/index/normal/UV/material
// arrays (spec §4.9 mesh invariants). Arrays that are absent or malformed
// are left nil/zero. Once Vertices and PolygonVertexIndex are both read,
// out-of-range polygon indices are resolved per cfg.IndexErrorHandling, and
// a missing vertex array or zero face count fails the load unless
// cfg.AllowMissingVertexPosition / cfg.AllowEmptyFaces loosens it.
func parseMeshNode(obj *RawNode, cfg *Config, paths *pathStack) (*MeshExt, error) {
	m := &MeshExt{}

	if v := obj.Child("Vertices"); v != nil && len(v.Values) > 0 {
		if flat, err := v.Values[0].ArrayF64(); err == nil {
			m.Vertices = make([]Vector3, len(flat)/3)
			for i := range m.Vertices {
				m.Vertices[i] = Vector3{X: flat[i*3], Y: flat[i*3+1], Z: flat[i*3+2]}
			}
		}
	}

	if pvi := obj.Child("PolygonVertexIndex"); pvi != nil && len(pvi.Values) > 0 {
		if idx, err := pvi.Values[0].ArrayI32(); err == nil {
			sanitized, err := sanitizePolygonVertexIndex(idx, len(m.Vertices), cfg.IndexErrorHandling)
			if err != nil {
				return nil, paths.annotate(err.(*Error))
			}
			m.PolygonVertexIndex = sanitized
			m.FaceCount = countFaces(sanitized)
		}
	}

	if layerNormal := obj.Child("LayerElementNormal"); layerNormal != nil {
		if normals := layerNormal.Child("Normals"); normals != nil && len(normals.Values) > 0 {
			if flat, err := normals.Values[0].ArrayF64(); err == nil {
				m.Normals = make([]Vector3, len(flat)/3)
				for i := range m.Normals {
					m.Normals[i] = Vector3{X: flat[i*3], Y: flat[i*3+1], Z: flat[i*3+2]}
				}
			}
		}
	}

	if layerUV := obj.Child("LayerElementUV"); layerUV != nil {
		if uv := layerUV.Child("UV"); uv != nil && len(uv.Values) > 0 {
			if flat, err := uv.Values[0].ArrayF64(); err == nil {
				m.UVs = make([][2]float64, len(flat)/2)
				for i := range m.UVs {
					m.UVs[i] = [2]float64{flat[i*2], flat[i*2+1]}
				}
			}
		}
	}

	if layerMat := obj.Child("LayerElementMaterial"); layerMat != nil {
		if mats := layerMat.Child("Materials"); mats != nil && len(mats.Values) > 0 {
			if idx, err := mats.Values[0].ArrayI32(); err == nil {
				m.MaterialIndices = idx
			}
		}
	}

	if len(m.Vertices) == 0 && !cfg.AllowMissingVertexPosition {
		return nil, paths.annotate(newError(ErrBadIndex, "mesh %q has no vertex positions", obj.Name))
	}
	if m.FaceCount == 0 && !cfg.AllowEmptyFaces {
		return nil, paths.annotate(newError(ErrBadIndex, "mesh %q has no faces", obj.Name))
	}

	return m, nil
}

// sanitizePolygonVertexIndex resolves each entry of a raw (bit-complement
// encoded) PolygonVertexIndex array whose decoded magnitude falls outside
// [0, vertexCount) per mode, preserving each entry's polygon-boundary
// marker.
func sanitizePolygonVertexIndex(idx []int32, vertexCount int, mode IndexErrorHandling) ([]int32, error) {
	if vertexCount <= 0 {
		// No vertex array to bounds-check against; the missing-vertices
		// invariant below is the one responsible for failing this case.
		return idx, nil
	}
	var out []int32
	for i, raw := range idx {
		real, isLast := decodePolygonVertex(raw)
		if real >= 0 && int(real) < vertexCount {
			continue
		}
		if out == nil {
			out = append([]int32(nil), idx...)
		}
		switch mode {
		case IndexAbortLoading:
			return nil, newError(ErrBadIndex, "polygon vertex index %d out of range [0,%d)", real, vertexCount)
		case IndexNoIndex:
			real = noMeshIndexSentinel
		default: // IndexClamp
			real = clampIndex(real, vertexCount)
		}
		if isLast {
			out[i] = ^real
		} else {
			out[i] = real
		}
	}
	if out == nil {
		return idx, nil
	}
	return out, nil
}

func clampIndex(real int32, vertexCount int) int32 {
	if vertexCount == 0 {
		return 0
	}
	if real < 0 {
		return 0
	}
	if int(real) >= vertexCount {
		return int32(vertexCount - 1)
	}
	return real
}

// countFaces counts polygons in a PolygonVertexIndex array: each negative
// (bit-complemented) entry closes one polygon (spec §4.9: "the last index of
// each polygon is bit-complemented (~i) to mark the polygon boundary").
func countFaces(idx []int32) int {
	n := 0
	for _, v := range idx {
		if v < 0 {
			n++
		}
	}
	return n
}

// decodePolygonVertex undoes the bit-complement boundary marker on one
// PolygonVertexIndex entry, returning the real vertex index and whether it
// was the last index of its polygon.
func decodePolygonVertex(raw int32) (index int32, isLast bool) {
	if raw < 0 {
		return ^raw, true
	}
	return raw, false
}
