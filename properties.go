package fbx

// Property is one entry of a Property70/Property60 bag: name, FBX
// type-name, sub-type-name, flags, and 0-4 typed values (spec §4.7).
// Unknown type-names are retained with their raw values, not discarded,
// so round-trip inspection is possible (spec §4.7).
type Property struct {
	Name    string
	Type    string
	SubType string
	Flags   string
	Values  []Value

	AnimCurveNode ElementIndex // filled in by the connection resolver (L6)
}

// PropertyBag is an ordered, case-sensitive map from property name to
// Property (spec §3). Order is preserved because some consumers rely on
// declaration order for debugging/round-trip, and because this is the
// same guarantee the rest of the scene model makes for its collections.
type PropertyBag struct {
	order []string
	byName map[string]*Property
}

// NewPropertyBag returns an empty bag.
func NewPropertyBag() PropertyBag {
	return PropertyBag{byName: make(map[string]*Property)}
}

// Set inserts or overwrites a property, preserving its position in Names()
// if it already existed.
func (b *PropertyBag) Set(p Property) {
	if b.byName == nil {
		b.byName = make(map[string]*Property)
	}
	if _, exists := b.byName[p.Name]; !exists {
		b.order = append(b.order, p.Name)
	}
	cp := p
	b.byName[p.Name] = &cp
}

// Get returns the property named name and whether it exists.
func (b *PropertyBag) Get(name string) (*Property, bool) {
	p, ok := b.byName[name]
	return p, ok
}

// Has reports whether a property named name exists.
func (b *PropertyBag) Has(name string) bool {
	_, ok := b.byName[name]
	return ok
}

// Names returns every property name in declaration order.
func (b *PropertyBag) Names() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// Empty reports whether the bag has no properties, used by callers probing
// whether a Properties70 block was actually present before falling back to
// the legacy Properties60 name.
func (b *PropertyBag) Empty() bool {
	return len(b.order) == 0
}

// FillMissing copies every property present in other but absent from b,
// preserving other's relative order by appending after b's own entries.
// This implements template defaulting (spec §4.7: "Templates are applied
// first; object-local properties override").
func (b *PropertyBag) FillMissing(template PropertyBag) {
	for _, name := range template.order {
		if !b.Has(name) {
			b.Set(*template.byName[name])
		}
	}
}

// parsePropertyBag reads every P child of a Properties70/Properties60
// node into a PropertyBag.
func parsePropertyBag(propsNode *RawNode) PropertyBag {
	bag := NewPropertyBag()
	if propsNode == nil {
		return bag
	}
	for _, p := range propsNode.ChildrenNamed("P") {
		prop, ok := parsePropertyNode(p)
		if ok {
			bag.Set(prop)
		}
	}
	return bag
}

// parsePropertyNode reads one `P: name, type, subtype, flags, value...`
// node.
func parsePropertyNode(p *RawNode) (Property, bool) {
	if len(p.Values) < 4 {
		return Property{}, false
	}
	name, err := p.Values[0].String()
	if err != nil {
		return Property{}, false
	}
	typeName, _ := p.Values[1].String()
	subType, _ := p.Values[2].String()
	flags, _ := p.Values[3].String()

	vals := make([]Value, 0, 4)
	for _, v := range p.Values[4:] {
		vals = append(vals, v)
	}
	return Property{
		Name: name, Type: typeName, SubType: subType, Flags: flags,
		Values: vals, AnimCurveNode: NoElement,
	}, true
}

// propFloat reads a property's first value as float64, or returns def if
// the property is absent or not numeric.
func propFloat(bag *PropertyBag, name string, def float64) float64 {
	p, ok := bag.Get(name)
	if !ok || len(p.Values) == 0 {
		return def
	}
	f, err := p.Values[0].Float64()
	if err != nil {
		return def
	}
	return f
}

// propVector3 reads a property's three values as a Vector3 (common for
// Lcl Translation/Rotation/Scaling and pivot/offset properties), or
// returns def if malformed or absent.
func propVector3(bag *PropertyBag, name string, def Vector3) Vector3 {
	p, ok := bag.Get(name)
	if !ok || len(p.Values) < 3 {
		return def
	}
	x, err1 := p.Values[0].Float64()
	y, err2 := p.Values[1].Float64()
	z, err3 := p.Values[2].Float64()
	if err1 != nil || err2 != nil || err3 != nil {
		return def
	}
	return Vector3{X: x, Y: y, Z: z}
}

func propInt(bag *PropertyBag, name string, def int64) int64 {
	p, ok := bag.Get(name)
	if !ok || len(p.Values) == 0 {
		return def
	}
	i, err := p.Values[0].Int64()
	if err != nil {
		return def
	}
	return i
}

func propBool(bag *PropertyBag, name string, def bool) bool {
	p, ok := bag.Get(name)
	if !ok || len(p.Values) == 0 {
		return def
	}
	b, err := p.Values[0].Bool()
	if err != nil {
		return def
	}
	return b
}
