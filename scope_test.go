package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool {
	return &b
}

func TestDynamicScopePushPopPeek(t *testing.T) {
	ds := NewDynamicScope()
	assert.True(t, ds.IsEmpty())
	assert.Nil(t, ds.Peek())
	assert.Nil(t, ds.Pop())

	a := &Schema{uri: "http://example.com/a"}
	b := &Schema{uri: "http://example.com/b"}

	ds.Push(a)
	ds.Push(b)

	assert.Equal(t, 2, ds.Size())
	assert.Same(t, b, ds.Peek())

	popped := ds.Pop()
	assert.Same(t, b, popped)
	assert.Equal(t, 1, ds.Size())
	assert.Same(t, a, ds.Peek())
}

func TestDynamicScopeLookupDynamicAnchor(t *testing.T) {
	ds := NewDynamicScope()
	outer := &Schema{uri: "http://example.com/outer"}
	outer.setDynamicAnchor("node")
	inner := &Schema{uri: "http://example.com/inner"}
	inner.setDynamicAnchor("node")

	ds.Push(outer)
	ds.Push(inner)

	found := ds.LookupDynamicAnchor("node")
	assert.Same(t, outer, found, "dynamicRef resolution searches outermost-first")

	assert.Nil(t, ds.LookupDynamicAnchor("missing"))
}

func TestDynamicScopeLookupRecursiveAnchor(t *testing.T) {
	ds := NewDynamicScope()
	outer := &Schema{uri: "http://example.com/outer", RecursiveAnchor: boolPtr(true)}
	inner := &Schema{uri: "http://example.com/inner", RecursiveAnchor: boolPtr(true)}

	ds.Push(outer)
	ds.Push(inner)

	found := ds.LookupRecursiveAnchor()
	assert.Same(t, outer, found, "recursiveRef ignores the anchor name and always picks the outermost opted-in resource")
}

func TestDynamicScopeLookupRecursiveAnchorNoneActive(t *testing.T) {
	ds := NewDynamicScope()
	ds.Push(&Schema{uri: "http://example.com/a"})
	ds.Push(&Schema{uri: "http://example.com/b", RecursiveAnchor: boolPtr(false)})

	assert.Nil(t, ds.LookupRecursiveAnchor())
}

func TestDynamicScopeClone(t *testing.T) {
	ds := NewDynamicScope()
	a := &Schema{uri: "http://example.com/a"}
	ds.Push(a)

	clone := ds.Clone()
	clone.Push(&Schema{uri: "http://example.com/b"})

	assert.Equal(t, 1, ds.Size(), "pushing onto the clone must not affect the original")
	assert.Equal(t, 2, clone.Size())
}

func TestDynamicScopeEqual(t *testing.T) {
	a := &Schema{uri: "http://example.com/a"}
	b := &Schema{uri: "http://example.com/b"}

	ds1 := NewDynamicScope()
	ds1.Push(a)
	ds1.Push(b)

	ds2 := NewDynamicScope()
	ds2.Push(a)
	ds2.Push(b)

	ds3 := NewDynamicScope()
	ds3.Push(b)
	ds3.Push(a)

	assert.True(t, ds1.Equal(ds2))
	assert.False(t, ds1.Equal(ds3))
	assert.False(t, ds1.Equal(NewDynamicScope()))

	var nilScope *DynamicScope
	assert.True(t, nilScope.Equal(nil))
	assert.False(t, ds1.Equal(nil))
}

func TestDynamicScopeKey(t *testing.T) {
	ds := NewDynamicScope()
	assert.Equal(t, "", ds.key())

	ds.Push(&Schema{uri: "http://example.com/a"})
	ds.Push(&Schema{uri: "http://example.com/b"})

	key1 := ds.key()
	assert.NotEmpty(t, key1)

	other := NewDynamicScope()
	other.Push(&Schema{uri: "http://example.com/a"})
	other.Push(&Schema{uri: "http://example.com/b"})
	assert.Equal(t, key1, other.key(), "two scopes over schemas with the same URIs produce the same key")

	reordered := NewDynamicScope()
	reordered.Push(&Schema{uri: "http://example.com/b"})
	reordered.Push(&Schema{uri: "http://example.com/a"})
	assert.NotEqual(t, key1, reordered.key())
}
