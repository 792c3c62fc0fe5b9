package fbx

import (
	"bytes"
	"image"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// EmbeddedContentFormat names the image container an embedded Video
// object's Content blob was sniffed as.
type EmbeddedContentFormat int

const (
	ContentUnknown EmbeddedContentFormat = iota
	ContentPNG
	ContentJPEG
	ContentTIFF
	ContentBMP
)

// EmbeddedContent is the decoded result of a Video object's binary Content
// property (spec §4.9 supplement: embedded texture payloads). Width/Height
// are populated for TIFF and BMP when their headers decode; PNG and JPEG
// leave them zero.
type EmbeddedContent struct {
	Format EmbeddedContentFormat
	Width  int
	Height int
	Raw    []byte
}

// decodeEmbeddedContent sniffs and, for TIFF/BMP, dimension-probes a Video
// object's Content blob. PNG/JPEG are left as opaque raw bytes (the
// teacher's own texture loader decodes those via the standard image
// package's registered decoders at texture-bind time, not at FBX-parse
// time), since this library's job ends at exposing the bytes, not at
// building a renderer-ready texture.
func decodeEmbeddedContent(raw []byte) EmbeddedContent {
	ec := EmbeddedContent{Format: ContentUnknown, Raw: raw}
	if len(raw) < 8 {
		return ec
	}

	switch {
	case bytes.HasPrefix(raw, []byte("\x89PNG\r\n\x1a\n")):
		ec.Format = ContentPNG
	case bytes.HasPrefix(raw, []byte{0xFF, 0xD8, 0xFF}):
		ec.Format = ContentJPEG
	case bytes.HasPrefix(raw, []byte("II*\x00")) || bytes.HasPrefix(raw, []byte("MM\x00*")):
		ec.Format = ContentTIFF
		if cfg, err := tiff.DecodeConfig(bytes.NewReader(raw)); err == nil {
			ec.Width, ec.Height = cfg.Width, cfg.Height
		}
	case bytes.HasPrefix(raw, []byte("BM")):
		ec.Format = ContentBMP
		if cfg, err := bmp.DecodeConfig(bytes.NewReader(raw)); err == nil {
			ec.Width, ec.Height = cfg.Width, cfg.Height
		}
	}
	return ec
}

// parseVideoNode reads a Video object's RelativeFilename and Content blob
// (spec §4.9 supplement), sniffing Content's format.
func parseVideoNode(obj *RawNode) *VideoExt {
	v := &VideoExt{}
	if fn := obj.Child("RelativeFilename"); fn != nil {
		if s, ok := fn.Value(0); ok {
			v.RelativeFilename, _ = s.String()
		}
	}
	if content := obj.Child("Content"); content != nil {
		if b, ok := content.Value(0); ok {
			if raw, err := b.Blob(); err == nil && len(raw) > 0 {
				v.Content = decodeEmbeddedContent(raw)
			}
		}
	}
	return v
}

// decodeEmbeddedImage fully decodes a TIFF or BMP Content blob into an
// image.Image, for callers that want pixel data rather than just
// dimensions. PNG/JPEG callers should use the standard library's image/png
// and image/jpeg directly on Raw.
func decodeEmbeddedImage(ec EmbeddedContent) (image.Image, error) {
	switch ec.Format {
	case ContentTIFF:
		return tiff.Decode(bytes.NewReader(ec.Raw))
	case ContentBMP:
		return bmp.Decode(bytes.NewReader(ec.Raw))
	default:
		return nil, newError(ErrUnknown, "embedded content format %d is not directly decodable", ec.Format)
	}
}
