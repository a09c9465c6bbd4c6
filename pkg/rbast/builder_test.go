package rbast

import "testing"

func TestAppendChildReparents(t *testing.T) {
	p1 := NewNode(NodeClassDef)
	p2 := NewNode(NodeModuleDef)
	child := NewNode(NodeDef)

	AppendChild(p1, child)
	if child.Parent != p1 {
		t.Fatal("child should be parented to p1")
	}

	AppendChild(p2, child)
	if child.Parent != p2 {
		t.Fatal("child should be reparented to p2")
	}
	if p1.HasChildren() {
		t.Fatal("p1 should no longer have children")
	}
}

func TestPrependChild(t *testing.T) {
	parent := NewNode(NodeProgram)
	a := NewNode(NodeCall)
	b := NewNode(NodeCall)

	AppendChild(parent, a)
	PrependChild(parent, b)

	children := parent.Children()
	if len(children) != 2 || children[0] != b || children[1] != a {
		t.Fatalf("Children() = %v, want [b, a]", children)
	}
}

func TestInsertBeforeAndAfter(t *testing.T) {
	parent := NewNode(NodeProgram)
	a := NewNode(NodeCall)
	c := NewNode(NodeCall)
	AppendChild(parent, a)
	AppendChild(parent, c)

	b := NewNode(NodeCall)
	InsertBefore(c, b)

	d := NewNode(NodeCall)
	InsertAfter(c, d)

	got := parent.Children()
	want := []*Node{a, b, c, d}
	if len(got) != len(want) {
		t.Fatalf("len(Children()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Children()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRemoveChild(t *testing.T) {
	parent := NewNode(NodeProgram)
	a := NewNode(NodeCall)
	b := NewNode(NodeCall)
	AppendChild(parent, a)
	AppendChild(parent, b)

	RemoveChild(parent, a)

	children := parent.Children()
	if len(children) != 1 || children[0] != b {
		t.Fatalf("Children() = %v, want [b]", children)
	}
	if a.Parent != nil {
		t.Fatal("removed child should have nil parent")
	}
}

func TestReplaceChild(t *testing.T) {
	parent := NewNode(NodeProgram)
	a := NewNode(NodeCall)
	b := NewNode(NodeCall)
	AppendChild(parent, a)

	replacement := NewNode(NodeCall)
	ReplaceChild(parent, a, replacement)

	children := parent.Children()
	if len(children) != 1 || children[0] != replacement {
		t.Fatalf("Children() = %v, want [replacement]", children)
	}
	if a.Parent != nil {
		t.Fatal("replaced child should have nil parent")
	}
	_ = b
}

func TestSetFilePropagatesToDescendants(t *testing.T) {
	root := NewProgram()
	child := NewNode(NodeDef)
	grandchild := NewNode(NodeCall)
	AppendChild(root, child)
	AppendChild(child, grandchild)

	file := NewFileSnapshot("x.rb", []byte("x"))
	SetFile(root, file)

	if root.File != file || child.File != file || grandchild.File != file {
		t.Fatal("SetFile should propagate to every descendant")
	}
}
