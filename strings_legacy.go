package fbx

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// decodeObjectString best-effort-decodes an object/creator name string
// that may not be UTF-8 (spec §3: "not assumed UTF-8 at this layer").
// Pre-2011 FBX files written on Windows commonly embed Windows-1252
// (Latin-1 superset) bytes for accented author/material names; if the raw
// bytes are already valid UTF-8 they are returned unchanged, otherwise a
// Windows-1252 decode is attempted as the most common legacy encoding
// Autodesk tooling of that era used.
func decodeObjectString(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

// splitNameClassTag splits an Objects/<Kind> node's name value on FBX's
// "Name::Class" separator (spec §4.7: "second the string name plus
// optional ::-separated class tag"). The class tag itself isn't
// surfaced by this reader (it is largely an artifact of the binary
// encoding, redundant with the Objects container name), but stripping it
// is required to recover the display name callers actually want.
func splitNameClassTag(raw []byte) string {
	s := decodeObjectString(raw)
	if idx := strings.Index(s, "\x00\x01"); idx >= 0 {
		return s[:idx]
	}
	if idx := strings.LastIndex(s, "::"); idx >= 0 {
		return s[:idx]
	}
	return s
}

// stringArena interns object/property name strings during L5 parsing so
// repeated identical names (property names in particular repeat
// constantly across a scene's objects) share one backing string, per the
// "deduplicates string blobs into a single arena" requirement of the L9
// finalizer (spec §4.11). Go's string type is already an immutable,
// copy-on-read-only view over bytes, so interning here is purely about
// collapsing duplicate allocations, not about lifetime safety.
type stringArena struct {
	seen map[string]string
}

func newStringArena() *stringArena {
	return &stringArena{seen: make(map[string]string)}
}

func (a *stringArena) intern(s string) string {
	if existing, ok := a.seen[s]; ok {
		return existing
	}
	a.seen[s] = s
	return s
}
