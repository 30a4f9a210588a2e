package scope

import "testing"

func TestResolveDottedPath(t *testing.T) {
	reg := NewRegistry()
	root := New(nil)

	type inst struct{ name string }
	child := &inst{name: "child"}
	root.TryAddSymbol("child", child, tok("child"))

	childScope := New(nil)
	reg.Bind(child, childScope)
	grandchild := &inst{name: "grandchild"}
	childScope.TryAddSymbol("grandchild", grandchild, tok("grandchild"))

	res := Resolve([]string{"child", "grandchild"}, root, reg)
	if res.Item != grandchild {
		t.Fatalf("Resolve = %v, want %v", res.Item, grandchild)
	}
	if res.FailedIndex != -1 {
		t.Errorf("FailedIndex = %d, want -1 on success", res.FailedIndex)
	}
}

func TestResolveFailsOnMissingFirstSegment(t *testing.T) {
	reg := NewRegistry()
	root := New(nil)
	res := Resolve([]string{"nope"}, root, reg)
	if res.Item != nil || res.FailedIndex != 0 {
		t.Fatalf("got %+v, want a miss at index 0", res)
	}
}

func TestResolveFailsWhenOwnerHasNoScope(t *testing.T) {
	reg := NewRegistry()
	root := New(nil)
	type inst struct{}
	leaf := &inst{}
	root.TryAddSymbol("leaf", leaf, tok("leaf"))

	res := Resolve([]string{"leaf", "field"}, root, reg)
	if res.Item != nil || res.FailedIndex != 1 {
		t.Fatalf("got %+v, want a miss at index 1", res)
	}
}

func TestNamesVisibleAtFirstSegment(t *testing.T) {
	reg := NewRegistry()
	root := New(nil)
	root.TryAddSymbol("foo", 1, tok("foo"))
	root.TryAddSymbol("bar", 2, tok("bar"))

	names := NamesVisibleAt([]string{"baz"}, 0, root, reg)
	if len(names) != 2 {
		t.Fatalf("want 2 candidate names, got %v", names)
	}
}
