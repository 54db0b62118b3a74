package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Fatal("new frame should be empty")
	}

	f.Set(ActionLeft)
	f.Set(ActionRotate)
	if !f.Has(ActionLeft) || !f.Has(ActionRotate) {
		t.Error("frame should report set actions")
	}
	if f.Has(ActionRight) {
		t.Error("frame should not report unset actions")
	}

	f.Clear()
	if !f.Empty() || f.Has(ActionLeft) {
		t.Error("Clear should drop every action")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionPause) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionPause)
	if !f.Has(ActionPause) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestActionString(t *testing.T) {
	if ActionRotate.String() != "Rotate" {
		t.Errorf("ActionRotate.String() = %q", ActionRotate.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("unknown action String() = %q", Action(99).String())
	}
}
