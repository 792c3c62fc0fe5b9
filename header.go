package fbx

// parseHeaderExtension reads FBXHeaderExtension (spec §4.7): creator and
// creation timestamp. The file version is not read here: parseASCII reads
// FBXHeaderExtension/FBXVersion, and parseBinary the envelope's version
// field.
func parseHeaderExtension(root *RawNode) (creator, creationTime string) {
	hdr := root.Child("FBXHeaderExtension")
	if hdr == nil {
		return "", ""
	}
	if c := hdr.Child("Creator"); c != nil {
		if v, ok := c.Value(0); ok {
			creator, _ = v.String()
		}
	}
	if ts := hdr.Child("CreationTimeStamp"); ts != nil {
		creationTime = formatTimeStamp(ts)
	}
	return creator, creationTime
}

func formatTimeStamp(ts *RawNode) string {
	get := func(name string) int64 {
		c := ts.Child(name)
		if c == nil {
			return 0
		}
		v, ok := c.Value(0)
		if !ok {
			return 0
		}
		n, _ := v.Int64()
		return n
	}
	year, month, day := get("Year"), get("Month"), get("Day")
	hour, minute, second := get("Hour"), get("Minute"), get("Second")
	return formatDateTime(year, month, day, hour, minute, second)
}

func formatDateTime(year, month, day, hour, minute, second int64) string {
	pad2 := func(n int64) string {
		s := itoa(n)
		if len(s) < 2 {
			return "0" + s
		}
		return s
	}
	return itoa(year) + "-" + pad2(month) + "-" + pad2(day) + " " +
		pad2(hour) + ":" + pad2(minute) + ":" + pad2(second)
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// parseGlobalSettings reads GlobalSettings/Properties70 (spec §4.7) into a
// GlobalSettings record. Missing properties fall back to FBX's own
// defaults (Y-up, Z-front, X-coord, unit = 1 cm, 30 fps).
func parseGlobalSettings(root *RawNode) GlobalSettings {
	gs := GlobalSettings{
		Axes:              DefaultAxisSystem(),
		OriginalUnitMeters: 0.01,
		TargetUnitMeters:   0.01,
		OriginalFrameRate:  30,
		CustomFrameRate:    -1,
	}
	node := root.Child("GlobalSettings")
	if node == nil {
		return gs
	}
	bag := parsePropertyBag(node.Child("Properties70"))
	if bag.Empty() {
		bag = parsePropertyBag(node.Child("Properties60"))
	}

	gs.Axes.Up = Axis{Index: int(propInt(&bag, "UpAxis", 1)), Sign: int(propInt(&bag, "UpAxisSign", 1))}
	gs.Axes.Front = Axis{Index: int(propInt(&bag, "FrontAxis", 2)), Sign: int(propInt(&bag, "FrontAxisSign", 1))}
	gs.Axes.Coord = Axis{Index: int(propInt(&bag, "CoordAxis", 0)), Sign: int(propInt(&bag, "CoordAxisSign", 1))}

	unitScaleCm := propFloat(&bag, "UnitScaleFactor", 1.0)
	gs.OriginalUnitMeters = unitScaleCm * 0.01
	gs.TargetUnitMeters = gs.OriginalUnitMeters
	if propFloat(&bag, "OriginalUnitScaleFactor", 0) != 0 {
		gs.OriginalUnitMeters = propFloat(&bag, "OriginalUnitScaleFactor", unitScaleCm) * 0.01
	}

	gs.TimeMode = propInt(&bag, "TimeMode", 0)
	gs.OriginalFrameRate = propFloat(&bag, "OriginalFrameRate", frameRateForMode(gs.TimeMode))
	gs.CustomFrameRate = propFloat(&bag, "CustomFrameRate", -1)

	return gs
}

// frameRateForMode maps the FBX TimeMode enum to frames per second for the
// modes that don't carry an explicit OriginalFrameRate property.
func frameRateForMode(mode int64) float64 {
	switch mode {
	case 1:
		return 120
	case 2:
		return 100
	case 3:
		return 60
	case 4:
		return 50
	case 5:
		return 48
	case 6:
		return 30 / 1.001
	case 7:
		return 30
	case 8:
		return 24 / 1.001
	case 9:
		return 24
	default:
		return 30
	}
}
