package models

import (
	"testing"
)

// TestFaceMaterialIndex verifies per-face material assignment.
func TestFaceMaterialIndex(t *testing.T) {
	mesh := NewMesh("test")
	mesh.Materials = []Material{
		{Name: "red", BaseColor: [4]float64{1, 0, 0, 1}},
		{Name: "green", BaseColor: [4]float64{0, 1, 0, 1}},
		{Name: "blue", BaseColor: [4]float64{0, 0, 1, 1}},
	}
	mesh.Faces = []Face{
		{V: [3]int{0, 1, 2}, Material: 0},
		{V: [3]int{3, 4, 5}, Material: 1},
		{V: [3]int{6, 7, 8}, Material: 2},
		{V: [3]int{9, 10, 11}, Material: -1},
	}

	if mesh.GetFaceMaterial(1) != 1 {
		t.Errorf("Face 1 should have material 1, got %d", mesh.GetFaceMaterial(1))
	}
	if mesh.GetFaceMaterial(3) != -1 {
		t.Errorf("Face 3 should have material -1, got %d", mesh.GetFaceMaterial(3))
	}

	if mat := mesh.GetMaterial(0); mat == nil || mat.Name != "red" {
		t.Errorf("GetMaterial(0) should return 'red' material")
	}
	if mesh.GetMaterial(-1) != nil {
		t.Errorf("GetMaterial(-1) should return nil")
	}
	if mesh.GetMaterial(99) != nil {
		t.Errorf("GetMaterial(99) should return nil for out-of-bounds")
	}
}

func TestDominantMaterial(t *testing.T) {
	mesh := NewMesh("test")
	mesh.Materials = []Material{{Name: "a"}, {Name: "b"}}

	if mesh.DominantMaterial() != nil {
		t.Error("mesh without faces should have no dominant material")
	}

	mesh.Faces = []Face{
		{Material: 1},
		{Material: -1},
		{Material: 0},
		{Material: 1},
	}
	if mat := mesh.DominantMaterial(); mat == nil || mat.Name != "b" {
		t.Errorf("DominantMaterial() = %v, want b", mat)
	}

	mesh.Faces = []Face{{Material: 1}, {Material: 0}}
	if mat := mesh.DominantMaterial(); mat == nil || mat.Name != "a" {
		t.Errorf("tie should pick the lowest index, got %v", mat)
	}
}

// TestMeshClonePreservesMaterials verifies Clone copies materials.
func TestMeshClonePreservesMaterials(t *testing.T) {
	mesh := NewMesh("original")
	mesh.Materials = []Material{
		{Name: "mat1", BaseColor: [4]float64{1, 0, 0, 1}},
		{Name: "mat2", BaseColor: [4]float64{0, 1, 0, 1}},
	}
	mesh.Faces = []Face{
		{V: [3]int{0, 1, 2}, Material: 0},
		{V: [3]int{3, 4, 5}, Material: 1},
	}

	clone := mesh.Clone()

	if clone.MaterialCount() != mesh.MaterialCount() {
		t.Errorf("Clone should have %d materials, got %d", mesh.MaterialCount(), clone.MaterialCount())
	}

	clone.Materials[0].Name = "modified"
	if mesh.Materials[0].Name == "modified" {
		t.Errorf("Clone should have independent material copy")
	}

	if clone.GetFaceMaterial(0) != 0 || clone.GetFaceMaterial(1) != 1 {
		t.Errorf("Clone should preserve face material indices")
	}
}
