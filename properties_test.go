package fbx

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/g3n/fbx/dom"
)

func TestPropertyBagEmptyOnNilNode(t *testing.T) {
	bag := parsePropertyBag(nil)
	assert.True(t, bag.Empty())
}

func TestPropertyBagEmptyTriggersLegacyFallback(t *testing.T) {
	// Regression test: parsePropertyBag must return a visibly empty bag
	// (not merely a non-nil-but-vacuous one) when the Properties70 block
	// is absent, so callers can fall back to Properties60.
	properties60 := &RawNode{
		Name: "Properties60",
		Children: []*RawNode{
			{Name: "P", Values: []Value{
				dom.NewString("UpAxis"), dom.NewString("int"), dom.NewString(""), dom.NewString(""),
				dom.NewInt(dom.TypeInt32, 1),
			}},
		},
	}
	obj := &RawNode{Name: "GlobalSettings", Children: []*RawNode{properties60}}

	bag := parsePropertyBag(obj.Child("Properties70"))
	assert.True(t, bag.Empty(), "no Properties70 child present, bag must read as empty")

	bag = parsePropertyBag(obj.Child("Properties60"))
	assert.False(t, bag.Empty())
	assert.True(t, bag.Has("UpAxis"))
}

func TestPropertyBagSetPreservesOrderOnOverwrite(t *testing.T) {
	bag := NewPropertyBag()
	bag.Set(Property{Name: "A", Values: []Value{dom.NewInt(dom.TypeInt32, 1)}})
	bag.Set(Property{Name: "B", Values: []Value{dom.NewInt(dom.TypeInt32, 2)}})
	bag.Set(Property{Name: "A", Values: []Value{dom.NewInt(dom.TypeInt32, 99)}})

	assert.Equal(t, []string{"A", "B"}, bag.Names())
	p, ok := bag.Get("A")
	assert.True(t, ok)
	v, _ := p.Values[0].Int64()
	assert.Equal(t, int64(99), v)
}

func TestPropertyBagFillMissingDoesNotOverrideLocal(t *testing.T) {
	local := NewPropertyBag()
	local.Set(Property{Name: "Lcl Scaling", Values: []Value{dom.NewFloat(dom.TypeFloat64, 2)}})

	template := NewPropertyBag()
	template.Set(Property{Name: "Lcl Scaling", Values: []Value{dom.NewFloat(dom.TypeFloat64, 1)}})
	template.Set(Property{Name: "Visibility", Values: []Value{dom.NewBool(true)}})

	local.FillMissing(template)

	scale, _ := local.Get("Lcl Scaling")
	v, _ := scale.Values[0].Float64()
	assert.Equal(t, 2.0, v, "object-local value must win over template default")

	assert.True(t, local.Has("Visibility"))
	assert.Equal(t, []string{"Lcl Scaling", "Visibility"}, local.Names())
}

func TestPropHelpersReturnDefaultWhenAbsent(t *testing.T) {
	bag := NewPropertyBag()
	assert.Equal(t, 1.5, propFloat(&bag, "Missing", 1.5))
	assert.Equal(t, int64(7), propInt(&bag, "Missing", 7))
	assert.True(t, propBool(&bag, "Missing", true))
	assert.Equal(t, Vector3{X: 1, Y: 2, Z: 3}, propVector3(&bag, "Missing", Vector3{X: 1, Y: 2, Z: 3}))
}

func TestPropVector3MalformedFallsBackToDefault(t *testing.T) {
	bag := NewPropertyBag()
	bag.Set(Property{Name: "Short", Values: []Value{dom.NewFloat(dom.TypeFloat64, 1), dom.NewFloat(dom.TypeFloat64, 2)}})
	got := propVector3(&bag, "Short", Vector3{X: 9, Y: 9, Z: 9})
	assert.Equal(t, Vector3{X: 9, Y: 9, Z: 9}, got)
}

func TestParsePropertyNodeRequiresFourValues(t *testing.T) {
	_, ok := parsePropertyNode(&RawNode{Values: []Value{dom.NewString("A"), dom.NewString("t")}})
	assert.False(t, ok)

	p, ok := parsePropertyNode(&RawNode{Values: []Value{
		dom.NewString("Lcl Translation"), dom.NewString("Lcl Translation"), dom.NewString(""), dom.NewString("A"),
		dom.NewFloat(dom.TypeFloat64, 1), dom.NewFloat(dom.TypeFloat64, 2), dom.NewFloat(dom.TypeFloat64, 3),
	}})
	assert.True(t, ok)
	assert.Equal(t, "Lcl Translation", p.Name)
	assert.Equal(t, 3, len(p.Values))
	assert.Equal(t, NoElement, p.AnimCurveNode)
}
