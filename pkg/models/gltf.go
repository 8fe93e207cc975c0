package models

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/raytrace/pkg/math3d"
)

// ErrExternalBuffer is returned for .gltf files whose geometry lives in a
// separate .bin file.
var ErrExternalBuffer = errors.New("external buffers not supported")

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// Options
	CalculateNormals bool
	SmoothNormals    bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		CalculateNormals: true,
		SmoothNormals:    true,
	}
}

// LoadGLB loads a binary GLTF (.glb) file.
func LoadGLB(path string) (*Mesh, error) {
	loader := NewGLTFLoader()
	return loader.Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	mesh.Materials = readMaterials(doc)

	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	hasNormals := false
	for _, v := range mesh.Vertices {
		if v.Normal.Len() > 0.001 {
			hasNormals = true
			break
		}
	}

	if l.CalculateNormals && !hasNormals {
		if l.SmoothNormals {
			mesh.CalculateSmoothNormals()
		} else {
			mesh.CalculateNormals()
		}
	}

	mesh.CalculateBounds()

	return mesh, nil
}

// readMaterials converts the document's PBR materials. Missing factors take
// the glTF defaults (white, fully metallic, fully rough).
func readMaterials(doc *gltf.Document) []Material {
	materials := make([]Material, 0, len(doc.Materials))
	for _, m := range doc.Materials {
		mat := Material{
			Name:      m.Name,
			BaseColor: [4]float64{1, 1, 1, 1},
			Metallic:  1,
			Roughness: 1,
		}
		if pbr := m.PBRMetallicRoughness; pbr != nil {
			if pbr.BaseColorFactor != nil {
				mat.BaseColor = *pbr.BaseColorFactor
			}
			if pbr.MetallicFactor != nil {
				mat.Metallic = *pbr.MetallicFactor
			}
			if pbr.RoughnessFactor != nil {
				mat.Roughness = *pbr.RoughnessFactor
			}
		}
		materials = append(materials, mat)
	}
	return materials
}

// processMesh extracts geometry from a GLTF mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Skip non-triangle primitives (lines, points, strips)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals []math3d.Vec3
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = readVec3Accessor(doc, normIdx)
			if err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		material := -1
		if prim.Material != nil && *prim.Material < len(mesh.Materials) {
			material = *prim.Material
		}

		baseVertex := len(mesh.Vertices)
		for i := range positions {
			v := Vertex{Position: positions[i]}
			if i < len(normals) {
				v.Normal = normals[i]
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		// glTF winding is already counter-clockwise for front faces
		for i := 0; i+2 < len(indices); i += 3 {
			face := Face{
				V:        [3]int{baseVertex + indices[i], baseVertex + indices[i+1], baseVertex + indices[i+2]},
				Material: material,
			}
			if face.V[0] >= len(mesh.Vertices) || face.V[1] >= len(mesh.Vertices) || face.V[2] >= len(mesh.Vertices) {
				return fmt.Errorf("index out of range in face %d", i/3)
			}
			mesh.Faces = append(mesh.Faces, face)
		}
	}

	return nil
}

// readVec3Accessor reads float VEC3 data from a GLTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v / %v", accessor.Type, accessor.ComponentType)
	}

	data, start, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vec3, accessor.Count)
	for i := range accessor.Count {
		offset := start + i*stride
		if offset+12 > len(data) {
			return nil, fmt.Errorf("accessor %d overruns its buffer", accessorIdx)
		}
		result[i] = math3d.V3(
			readFloat32(data[offset:]),
			readFloat32(data[offset+4:]),
			readFloat32(data[offset+8:]),
		)
	}

	return result, nil
}

// readIndices reads scalar index data from a GLTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
	}

	data, start, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range accessor.Count {
		offset := start + i*stride
		if offset+size > len(data) {
			return nil, fmt.Errorf("accessor %d overruns its buffer", accessorIdx)
		}
		switch size {
		case 1:
			result[i] = int(data[offset])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(data[offset:]))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(data[offset:]))
		}
	}

	return result, nil
}

// accessorBytes resolves the buffer behind an accessor and returns it with
// the first element's offset and the element stride.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]

	if buffer.URI != "" && buffer.Data == nil {
		return nil, 0, 0, ErrExternalBuffer
	}
	if buffer.Data == nil {
		return nil, 0, 0, fmt.Errorf("buffer has no data")
	}

	stride := bufferView.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	return buffer.Data, bufferView.ByteOffset + accessor.ByteOffset, stride, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}
