package calibration

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/lixenwraith/dice-tray/vmath"
)

// ErrUnknownDie is returned for a die name with no built-in table
var ErrUnknownDie = errors.New("unknown die type")

var up = vmath.Vec3F{Y: 1}

// phi is the golden ratio used by the dodecahedron/icosahedron normals
var phi = (1 + math.Sqrt(5)) / 2

// d10Elevation is the face normal tilt of the pentagonal trapezohedron
var d10Elevation = math.Atan(0.5)

var builtins = map[string]func() []vmath.Vec3F{
	"d4":  tetrahedronNormals,
	"d6":  cubeNormals,
	"d8":  octahedronNormals,
	"d10": trapezohedronNormals,
	"d12": dodecahedronNormals,
	"d20": icosahedronNormals,
}

// Builtin returns the generated table for a standard die name
func Builtin(name string) (*Table, error) {
	gen, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDie, name)
	}
	return FromNormals(gen())
}

// BuiltinNames lists the built-in die names ordered by face count
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return len(builtins[names[i]]()) < len(builtins[names[j]]())
	})
	return names
}

// FromNormals builds a table where face i+1 is up when normals[i] points along +Y
func FromNormals(normals []vmath.Vec3F) (*Table, error) {
	entries := make([]Entry, len(normals))
	for i, n := range normals {
		if vmath.V3FMagSq(n) == 0 {
			return nil, fmt.Errorf("%w: face %d has a zero normal", ErrInvalidAngle, i+1)
		}
		entries[i] = Entry{Face: i + 1, Reference: vmath.OrientationBetween(n, up)}
	}
	return New(entries)
}

// Opposite faces of the cube sum to 7
func cubeNormals() []vmath.Vec3F {
	return []vmath.Vec3F{
		{Y: 1}, {X: 1}, {Z: 1}, {Z: -1}, {X: -1}, {Y: -1},
	}
}

func tetrahedronNormals() []vmath.Vec3F {
	return normalizeAll([]vmath.Vec3F{
		{X: 1, Y: 1, Z: 1},
		{X: 1, Y: -1, Z: -1},
		{X: -1, Y: 1, Z: -1},
		{X: -1, Y: -1, Z: 1},
	})
}

func octahedronNormals() []vmath.Vec3F {
	var out []vmath.Vec3F
	for _, sy := range []float64{1, -1} {
		for _, sx := range []float64{1, -1} {
			for _, sz := range []float64{1, -1} {
				out = append(out, vmath.Vec3F{X: sx, Y: sy, Z: sz})
			}
		}
	}
	return normalizeAll(out)
}

// Upper and lower kites alternate, lower ring offset by half a step
func trapezohedronNormals() []vmath.Vec3F {
	out := make([]vmath.Vec3F, 0, 10)
	step := 2 * math.Pi / 5
	ce, se := math.Cos(d10Elevation), math.Sin(d10Elevation)
	for k := 0; k < 5; k++ {
		az := float64(k) * step
		out = append(out,
			vmath.Vec3F{X: ce * math.Cos(az), Y: se, Z: ce * math.Sin(az)},
			vmath.Vec3F{X: ce * math.Cos(az+step/2), Y: -se, Z: ce * math.Sin(az+step/2)},
		)
	}
	return out
}

// Dodecahedron face normals are the icosahedron vertices
func dodecahedronNormals() []vmath.Vec3F {
	var out []vmath.Vec3F
	for _, a := range []float64{1, -1} {
		for _, b := range []float64{phi, -phi} {
			out = append(out,
				vmath.Vec3F{X: 0, Y: a, Z: b},
				vmath.Vec3F{X: a, Y: b, Z: 0},
				vmath.Vec3F{X: b, Y: 0, Z: a},
			)
		}
	}
	return normalizeAll(out)
}

// Icosahedron face normals are the dodecahedron vertices
func icosahedronNormals() []vmath.Vec3F {
	var out []vmath.Vec3F
	for _, sx := range []float64{1, -1} {
		for _, sy := range []float64{1, -1} {
			for _, sz := range []float64{1, -1} {
				out = append(out, vmath.Vec3F{X: sx, Y: sy, Z: sz})
			}
		}
	}
	inv := 1 / phi
	for _, a := range []float64{inv, -inv} {
		for _, b := range []float64{phi, -phi} {
			out = append(out,
				vmath.Vec3F{X: 0, Y: a, Z: b},
				vmath.Vec3F{X: a, Y: b, Z: 0},
				vmath.Vec3F{X: b, Y: 0, Z: a},
			)
		}
	}
	return normalizeAll(out)
}

func normalizeAll(vs []vmath.Vec3F) []vmath.Vec3F {
	for i := range vs {
		vs[i] = vmath.V3FNormalize(vs[i])
	}
	return vs
}
