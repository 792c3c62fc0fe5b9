package fbx

import "gopkg.in/yaml.v3"

// presetYAML holds the handful of named vendor-quirk bundles as embedded
// YAML documents, each unmarshalled into a presetOverrides record by
// ApplyPreset and applied to the caller's Config. Keeping the source data as YAML (the
// format this project's toolchain already uses for node-editor resource
// bundles) rather than a Go literal map keeps the quirk bundles easy to
// read and diff independent of Go syntax.
var presetYAML = map[string]string{
	"maya": `
disableQuirks: false
strict: false
geometryTransformHandling: helperNodes
inheritModeHandling: compensate
handednessConversionAxis: none
`,
	"blender": `
disableQuirks: false
strict: false
geometryTransformHandling: modifyGeometry
inheritModeHandling: ignore
handednessConversionAxis: none
`,
	"3dsmax": `
disableQuirks: false
strict: false
geometryTransformHandling: preserve
inheritModeHandling: preserve
handednessConversionAxis: x
`,
}

// presetOverrides is the subset of Config a named preset can adjust. It
// exists separately from Config so the YAML vocabulary stays stable even if
// Config grows fields presets don't care about.
type presetOverrides struct {
	DisableQuirks             bool   `yaml:"disableQuirks"`
	Strict                    bool   `yaml:"strict"`
	GeometryTransformHandling string `yaml:"geometryTransformHandling"`
	InheritModeHandling       string `yaml:"inheritModeHandling"`
	HandednessConversionAxis  string `yaml:"handednessConversionAxis"`
}

// PresetName identifies a named vendor-quirk bundle for ApplyPreset.
type PresetName string

const (
	PresetMaya    PresetName = "maya"
	PresetBlender PresetName = "blender"
	Preset3dsMax  PresetName = "3dsmax"
)

// ApplyPreset mutates cfg in place with the named bundle's overrides. An
// unknown name leaves cfg unchanged and returns an error.
func ApplyPreset(cfg *Config, name PresetName) error {
	doc, ok := presetYAML[string(name)]
	if !ok {
		return newError(ErrUnknown, "unknown preset %q", string(name))
	}
	var ov presetOverrides
	if err := yaml.Unmarshal([]byte(doc), &ov); err != nil {
		return newError(ErrUnknown, "malformed preset %q: %v", string(name), err)
	}

	cfg.DisableQuirks = ov.DisableQuirks
	cfg.Strict = ov.Strict

	switch ov.GeometryTransformHandling {
	case "helperNodes":
		cfg.GeometryTransformHandling = GeomTransformHelperNodes
	case "modifyGeometry":
		cfg.GeometryTransformHandling = GeomTransformModifyGeometry
	case "modifyGeometryNoFallback":
		cfg.GeometryTransformHandling = GeomTransformModifyGeometryNoFallback
	default:
		cfg.GeometryTransformHandling = GeomTransformPreserve
	}

	switch ov.InheritModeHandling {
	case "helperNodes":
		cfg.InheritModeHandling = InheritHandlingHelperNodes
	case "compensate":
		cfg.InheritModeHandling = InheritHandlingCompensate
	case "ignore":
		cfg.InheritModeHandling = InheritHandlingIgnore
	default:
		cfg.InheritModeHandling = InheritHandlingPreserve
	}

	switch ov.HandednessConversionAxis {
	case "x":
		cfg.HandednessConversionAxis = AxisX
	case "y":
		cfg.HandednessConversionAxis = AxisY
	case "z":
		cfg.HandednessConversionAxis = AxisZ
	default:
		cfg.HandednessConversionAxis = AxisNone
	}

	return nil
}
