package systems

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

// NoiseField is a continuous scalar field over 3-D space.
type NoiseField interface {
	Sample(x, y, z float64) float64
}

// Skew and unskew factors for 3-D simplex noise.
const (
	simplexF3 = 1.0 / 3.0
	simplexG3 = 1.0 / 6.0

	// simplexNorm scales the summed corner contributions into roughly [-1, 1].
	simplexNorm = 32.0
)

// permSource is the fixed permutation every SimplexNoise is built from.
var permSource = [256]uint8{
	151, 160, 137, 91, 90, 15, 131, 13, 201, 95, 96, 53, 194, 233, 7, 225,
	140, 36, 103, 30, 69, 142, 8, 99, 37, 240, 21, 10, 23, 190, 6, 148,
	247, 120, 234, 75, 0, 26, 197, 62, 94, 252, 219, 203, 117, 35, 11, 32,
	57, 177, 33, 88, 237, 149, 56, 87, 174, 20, 125, 136, 171, 168, 68, 175,
	74, 165, 71, 134, 139, 48, 27, 166, 77, 146, 158, 231, 83, 111, 229, 122,
	60, 211, 133, 230, 220, 105, 92, 41, 55, 46, 245, 40, 244, 102, 143, 54,
	65, 25, 63, 161, 1, 216, 80, 73, 209, 76, 132, 187, 208, 89, 18, 169,
	200, 196, 135, 130, 116, 188, 159, 86, 164, 100, 109, 198, 173, 186, 3, 64,
	52, 217, 226, 250, 124, 123, 5, 202, 38, 147, 118, 126, 255, 82, 85, 212,
	207, 206, 59, 227, 47, 16, 58, 17, 182, 189, 28, 42, 223, 183, 170, 213,
	119, 248, 152, 2, 44, 154, 163, 70, 221, 153, 101, 155, 167, 43, 172, 9,
	129, 22, 39, 253, 19, 98, 108, 110, 79, 113, 224, 232, 178, 185, 112, 104,
	218, 246, 97, 228, 251, 34, 242, 193, 238, 210, 144, 12, 191, 179, 162, 241,
	81, 51, 145, 235, 249, 14, 239, 107, 49, 192, 214, 31, 181, 199, 106, 157,
	184, 84, 204, 176, 115, 121, 50, 45, 127, 4, 150, 254, 138, 236, 205, 93,
	222, 114, 67, 29, 24, 72, 243, 141, 128, 195, 78, 66, 215, 61, 156, 180,
}

// grad3 holds the 12 edge-midpoint gradient directions of a cube.
var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// SimplexNoise generates 3-D simplex noise from a fixed permutation table.
// It is immutable after construction and safe to share.
type SimplexNoise struct {
	perm  [512]int
	gradP [512]*[3]float64
}

// NewSimplexNoise creates a simplex noise generator.
func NewSimplexNoise() *SimplexNoise {
	n := &SimplexNoise{}
	for i := 0; i < 256; i++ {
		p := int(permSource[i])
		n.perm[i] = p
		n.perm[i+256] = p
		n.gradP[i] = &grad3[p%12]
		n.gradP[i+256] = &grad3[p%12]
	}
	return n
}

// Sample returns the noise value at (x, y, z), roughly in [-1, 1].
func (n *SimplexNoise) Sample(x, y, z float64) float64 {
	// Skew input space to find the simplex cell
	s := (x + y + z) * simplexF3
	i := int(math.Floor(x + s))
	j := int(math.Floor(y + s))
	k := int(math.Floor(z + s))
	t := float64(i+j+k) * simplexG3
	x0 := x - float64(i) + t
	y0 := y - float64(j) + t
	z0 := z - float64(k) + t

	// Pick the tetrahedron from the ordering of the offsets
	var i1, j1, k1, i2, j2, k2 int
	if x0 >= y0 {
		switch {
		case y0 >= z0:
			i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 1, 0
		case x0 >= z0:
			i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 0, 1
		default:
			i1, j1, k1, i2, j2, k2 = 0, 0, 1, 1, 0, 1
		}
	} else {
		switch {
		case y0 < z0:
			i1, j1, k1, i2, j2, k2 = 0, 0, 1, 0, 1, 1
		case x0 < z0:
			i1, j1, k1, i2, j2, k2 = 0, 1, 0, 0, 1, 1
		default:
			i1, j1, k1, i2, j2, k2 = 0, 1, 0, 1, 1, 0
		}
	}

	x1 := x0 - float64(i1) + simplexG3
	y1 := y0 - float64(j1) + simplexG3
	z1 := z0 - float64(k1) + simplexG3
	x2 := x0 - float64(i2) + 2*simplexG3
	y2 := y0 - float64(j2) + 2*simplexG3
	z2 := z0 - float64(k2) + 2*simplexG3
	x3 := x0 - 1 + 3*simplexG3
	y3 := y0 - 1 + 3*simplexG3
	z3 := z0 - 1 + 3*simplexG3

	// Lattice indices wrap with the 256-periodic table
	i &= 255
	j &= 255
	k &= 255

	g0 := n.gradP[i+n.perm[j+n.perm[k]]]
	g1 := n.gradP[i+i1+n.perm[j+j1+n.perm[k+k1]]]
	g2 := n.gradP[i+i2+n.perm[j+j2+n.perm[k+k2]]]
	g3 := n.gradP[i+1+n.perm[j+1+n.perm[k+1]]]

	return simplexNorm * (corner(g0, x0, y0, z0) +
		corner(g1, x1, y1, z1) +
		corner(g2, x2, y2, z2) +
		corner(g3, x3, y3, z3))
}

// corner returns one simplex corner's contribution.
func corner(g *[3]float64, x, y, z float64) float64 {
	t := 0.6 - x*x - y*y - z*z
	if t < 0 {
		return 0
	}
	t *= t
	return t * t * (g[0]*x + g[1]*y + g[2]*z)
}

// OpenSimplexField adapts OpenSimplex noise to NoiseField. Unlike
// SimplexNoise it is seeded, so different seeds give different swarms.
type OpenSimplexField struct {
	noise opensimplex.Noise
}

// NewOpenSimplexField creates a seeded OpenSimplex field.
func NewOpenSimplexField(seed int64) *OpenSimplexField {
	return &OpenSimplexField{noise: opensimplex.New(seed)}
}

// Sample returns the noise value at (x, y, z), roughly in [-1, 1].
func (f *OpenSimplexField) Sample(x, y, z float64) float64 {
	return f.noise.Eval3(x, y, z)
}

// NewNoiseField builds the named noise field: "simplex" (default) or
// "opensimplex".
func NewNoiseField(kind string, seed int64) NoiseField {
	if kind == "opensimplex" {
		return NewOpenSimplexField(seed)
	}
	return NewSimplexNoise()
}
