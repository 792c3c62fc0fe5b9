package fbx

// parseAnimCurveNode reads an AnimationCurve object's KeyTime/KeyValueFloat
// arrays (spec §4.9: curve channel evaluation). A curve with no keys is
// valid and simply never changes the bound property; evaluation falls back
// to the static property value in that case (handled by the connection
// resolver, not here).
func parseAnimCurveNode(obj *RawNode) *AnimCurveExt {
	c := &AnimCurveExt{}

	if kt := obj.Child("KeyTime"); kt != nil && len(kt.Values) > 0 {
		if times, err := kt.Values[0].ArrayI64(); err == nil {
			c.KeyTimes = times
		}
	}

	if kv := obj.Child("KeyValueFloat"); kv != nil && len(kv.Values) > 0 {
		if vals, err := kv.Values[0].ArrayF32(); err == nil {
			c.KeyValues = make([]float64, len(vals))
			for i, f := range vals {
				c.KeyValues[i] = float64(f)
			}
		}
	}

	return c
}

// evaluateCurve linearly interpolates an AnimCurve's keyframes at timeFBX
// (FBX time units, 1/46186158000 second). Returns ok=false if the curve has
// no keys, in which case the caller should use the bound property's static
// value instead.
func evaluateCurve(c *AnimCurveExt, timeFBX int64) (value float64, ok bool) {
	n := len(c.KeyTimes)
	if n == 0 || len(c.KeyValues) != n {
		return 0, false
	}
	if timeFBX <= c.KeyTimes[0] {
		return c.KeyValues[0], true
	}
	if timeFBX >= c.KeyTimes[n-1] {
		return c.KeyValues[n-1], true
	}
	for i := 1; i < n; i++ {
		if timeFBX <= c.KeyTimes[i] {
			t0, t1 := c.KeyTimes[i-1], c.KeyTimes[i]
			v0, v1 := c.KeyValues[i-1], c.KeyValues[i]
			if t1 == t0 {
				return v0, true
			}
			frac := float64(timeFBX-t0) / float64(t1-t0)
			return v0 + (v1-v0)*frac, true
		}
	}
	return c.KeyValues[n-1], true
}
