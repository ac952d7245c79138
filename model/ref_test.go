package model

import "testing"

func TestEntityRef_Zero(t *testing.T) {
	if !(EntityRef{}).Zero() {
		t.Error("empty ref should be zero")
	}
	if (EntityRef{Type: EntityObjective, ID: "obj-1"}).Zero() {
		t.Error("populated ref should not be zero")
	}
}

func TestEntityRef_UnknownLabel(t *testing.T) {
	tests := []struct {
		ref  EntityRef
		want string
	}{
		{EntityRef{Type: EntityObjective, ID: "x"}, "Unknown objective"},
		{EntityRef{Type: EntityKeyResult, ID: "x"}, "Unknown key result"},
		{EntityRef{Type: EntityInitiative, ID: "x"}, "Unknown initiative"},
		{EntityRef{Type: EntityWorkItem, ID: "x"}, "Unknown work item"},
		{EntityRef{Type: "mystery", ID: "x"}, "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.ref.UnknownLabel(); got != tt.want {
			t.Errorf("UnknownLabel() for %s = %q, want %q", tt.ref.Type, got, tt.want)
		}
	}
}

func TestEntityType_Valid(t *testing.T) {
	for _, et := range []EntityType{EntityObjective, EntityKeyResult, EntityInitiative, EntityWorkItem} {
		if !et.Valid() {
			t.Errorf("%s should be valid", et)
		}
	}
	if EntityType("cycle").Valid() {
		t.Error("cycle is not an attachable entity type")
	}
}
