package topology

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
)

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// SampleInSphere returns a point uniformly distributed in the volume of a sphere:
// theta = 2πu, phi = acos(2u-1), r = radius·cbrt(u).
func SampleInSphere(rng *rand.Rand, center Vec3, radius float32) Vec3 {
	theta := rng.Float32() * 2 * math32.Pi
	phi := math32.Acos(2*rng.Float32() - 1)
	r := radius * math32.Cbrt(rng.Float32())
	return fromSpherical(center, r, theta, phi)
}

// SampleInShell returns a point between minR and maxR from center. Radius and polar angle
// are both drawn uniformly, so particles gather toward the poles and the inner surface.
func SampleInShell(rng *rand.Rand, center Vec3, minR, maxR float32) Vec3 {
	theta := rng.Float32() * 2 * math32.Pi
	phi := rng.Float32() * math32.Pi
	r := minR + rng.Float32()*(maxR-minR)
	return fromSpherical(center, r, theta, phi)
}

func fromSpherical(c Vec3, r, theta, phi float32) Vec3 {
	sinPhi := math32.Sin(phi)
	return Vec3{
		X: c.X + r*sinPhi*math32.Cos(theta),
		Y: c.Y + r*sinPhi*math32.Sin(theta),
		Z: c.Z + r*math32.Cos(phi),
	}
}
