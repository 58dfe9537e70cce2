package asset

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/pthm-cable/morph/shape"
)

const dracoExtension = "KHR_draco_mesh_compression"

// ErrDraco is returned for Draco-compressed primitives, which cannot be decoded.
var ErrDraco = errors.New("draco-compressed meshes are not supported")

// LoadGLTF reads a .glb or .gltf file and returns one shape per mesh node.
func LoadGLTF(path string) ([]shape.Shape, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	shapes, err := ShapesFromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return shapes, nil
}

// ShapesFromDocument walks the default scene depth first and turns every node
// that references a mesh into a shape. All primitives of a mesh are
// concatenated. Node transforms are ignored; positions are raw mesh data.
// Documents without scenes fall back to every mesh in declaration order.
func ShapesFromDocument(doc *gltf.Document) ([]shape.Shape, error) {
	var shapes []shape.Shape

	addMesh := func(name string, mesh *gltf.Mesh) error {
		var points []mgl32.Vec3
		for pi, prim := range mesh.Primitives {
			if _, ok := prim.Extensions[dracoExtension]; ok {
				return fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, pi, ErrDraco)
			}
			idx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			pos, err := modeler.ReadPosition(doc, doc.Accessors[idx], nil)
			if err != nil {
				return fmt.Errorf("mesh %q primitive %d positions: %w", mesh.Name, pi, err)
			}
			for _, p := range pos {
				points = append(points, mgl32.Vec3(p))
			}
		}
		if len(points) == 0 {
			return nil
		}
		if name == "" {
			name = mesh.Name
		}
		if name == "" {
			name = fmt.Sprintf("shape %d", len(shapes))
		}
		shapes = append(shapes, shape.Shape{Name: name, PointCount: len(points), Positions: points})
		return nil
	}

	if doc.Scene == nil && len(doc.Scenes) == 0 {
		for _, mesh := range doc.Meshes {
			if err := addMesh("", mesh); err != nil {
				return nil, err
			}
		}
		return shapes, nil
	}

	scene := doc.Scenes[0]
	if doc.Scene != nil {
		scene = doc.Scenes[*doc.Scene]
	}

	var walk func(node *gltf.Node) error
	walk = func(node *gltf.Node) error {
		if node.Mesh != nil {
			if err := addMesh(node.Name, doc.Meshes[*node.Mesh]); err != nil {
				return err
			}
		}
		for _, child := range node.Children {
			if err := walk(doc.Nodes[child]); err != nil {
				return err
			}
		}
		return nil
	}

	for _, n := range scene.Nodes {
		if err := walk(doc.Nodes[n]); err != nil {
			return nil, err
		}
	}
	return shapes, nil
}

// SaveGLB writes shapes as point meshes, one root node per shape.
func SaveGLB(path string, shapes []shape.Shape) error {
	doc := gltf.NewDocument()
	for _, s := range shapes {
		pos := make([][3]float32, len(s.Positions))
		for i, p := range s.Positions {
			pos[i] = p
		}
		acc := modeler.WritePosition(doc, pos)
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name: s.Name,
			Primitives: []*gltf.Primitive{{
				Attributes: gltf.Attribute{gltf.POSITION: acc},
				Mode:       gltf.PrimitivePoints,
			}},
		})
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: s.Name,
			Mesh: gltf.Index(uint32(len(doc.Meshes) - 1)),
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
	}
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
