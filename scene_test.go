package fbx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSceneBuilderAddAssignsSelfAndIndexesByID(t *testing.T) {
	b := newSceneBuilder()
	idx := b.add(Element{ID: 42, Kind: KindNode, Name: "Cube"})
	assert.Equal(t, ElementIndex(0), idx)
	assert.Equal(t, ElementIndex(0), b.elements[0].Self)

	got, ok := b.byID[42]
	assert.True(t, ok)
	assert.Equal(t, idx, got)
}

func TestSceneBuilderSkipsZeroIDInIndex(t *testing.T) {
	b := newSceneBuilder()
	b.add(Element{ID: 0, Kind: KindNode, Name: "RootLike"})
	_, ok := b.byID[0]
	assert.False(t, ok, "id 0 is the implicit root sentinel, not a real object id")
}

func TestSceneFinalizeGroupsByKindInInsertionOrder(t *testing.T) {
	b := newSceneBuilder()
	rootIdx := b.add(Element{ID: 0, Kind: KindNode, Name: "Root"})
	b.add(Element{ID: 1, Kind: KindMesh, Name: "MeshA"})
	b.add(Element{ID: 2, Kind: KindNode, Name: "Child"})
	b.add(Element{ID: 3, Kind: KindMesh, Name: "MeshB"})

	settings := GlobalSettings{Axes: DefaultAxisSystem()}
	meta := SceneMetadata{Creator: "tester"}

	scene := b.finalize(rootIdx, settings, meta, nil)

	meshes := scene.ElementsOf(KindMesh)
	assert.Equal(t, 2, len(meshes))
	assert.Equal(t, "MeshA", scene.Element(meshes[0]).Name)
	assert.Equal(t, "MeshB", scene.Element(meshes[1]).Name)

	nodes := scene.ElementsOf(KindNode)
	assert.Equal(t, 2, len(nodes))
}

func TestSceneByIDAndFindByName(t *testing.T) {
	b := newSceneBuilder()
	rootIdx := b.add(Element{ID: 0, Kind: KindNode, Name: "Root"})
	b.add(Element{ID: 10, Kind: KindMesh, Name: "Body"})

	scene := b.finalize(rootIdx, GlobalSettings{}, SceneMetadata{}, nil)

	idx, ok := scene.ByID(10)
	assert.True(t, ok)
	assert.Equal(t, "Body", scene.Element(idx).Name)

	found := scene.FindByName(KindMesh, "Body")
	assert.Equal(t, idx, found)

	assert.Equal(t, NoElement, scene.FindByName(KindMesh, "Missing"))
}

func TestSceneElementOnInvalidIndexReturnsNil(t *testing.T) {
	scene := &Scene{Elements: []Element{{Name: "only"}}}
	assert.Nil(t, scene.Element(NoElement))
	assert.Nil(t, scene.Element(ElementIndex(5)))
	assert.NotNil(t, scene.Element(ElementIndex(0)))
}

func TestSceneRetainsDOMOnlyWhenRequested(t *testing.T) {
	dom := &RawNode{Name: "Root"}

	b := newSceneBuilder()
	rootIdx := b.add(Element{ID: 0, Kind: KindNode, Name: "Root"})
	scene := b.finalize(rootIdx, GlobalSettings{}, SceneMetadata{}, dom)
	assert.Same(t, dom, scene.DOM)

	b2 := newSceneBuilder()
	rootIdx2 := b2.add(Element{ID: 0, Kind: KindNode, Name: "Root"})
	scene2 := b2.finalize(rootIdx2, GlobalSettings{}, SceneMetadata{}, nil)
	assert.Nil(t, scene2.DOM)
}
