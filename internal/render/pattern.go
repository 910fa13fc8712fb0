package render

import "math"

// Variants is the number of procedural quad patterns.
const Variants = 7

var variantNames = [Variants]string{
	"plasma",
	"warped-stripes",
	"ripples",
	"spiral",
	"grid",
	"interference",
	"diagonal-sweep",
}

func VariantName(v int) string {
	return variantNames[((v%Variants)+Variants)%Variants]
}

// Pattern evaluates quad variant v at local coordinates (u, v) in [0, 1]
// for a scroll phase. It is the CPU twin of the quad fragment shader.
func Pattern(variant int, u, v, phase float64) (r, g, b float64) {
	d := math.Hypot(u-0.5, v-0.5)
	ph := phase
	switch ((variant % Variants) + Variants) % Variants {
	case 0:
		s := math.Sin(10*u+ph) + math.Sin(10*v+1.3*ph) + math.Sin(10*(u+v)+0.7*ph)
		return palette(s/6 + 0.1*ph)
	case 1:
		w := u + 0.1*math.Sin(8*v+ph)
		s := 0.5 + 0.5*math.Sin(40*w)
		return scale(0.6+0.4*s)(palette(0.2*s + 0.05*ph))
	case 2:
		s := 0.5 + 0.5*math.Sin(40*d-2*ph)
		return scale(s)(palette(d + 0.1*ph))
	case 3:
		a := math.Atan2(v-0.5, u-0.5)
		s := 0.5 + 0.5*math.Sin(5*a+30*d-2*ph)
		return scale(s)(palette(a/(2*math.Pi) + 0.1*ph))
	case 4:
		gx := math.Abs(fract(8*u+0.2*ph) - 0.5)
		gy := math.Abs(fract(8*v) - 0.5)
		s := 1 - smoothstep(0, 0.06, math.Min(gx, gy))
		r0, g0, b0 := scale(0.2)(palette(0.6 + 0.05*ph))
		r1, g1, b1 := palette(0.1 * ph)
		return mix(r0, r1, s), mix(g0, g1, s), mix(b0, b1, s)
	case 5:
		d1 := math.Hypot(u-0.25, v-0.5)
		d2 := math.Hypot(u-0.75, v-0.5)
		s := 0.5 + 0.25*(math.Sin(50*d1-2*ph)+math.Sin(50*d2-2*ph))
		return scale(s)(palette(0.5*s + 0.1*ph))
	default:
		t := fract((u+v)*0.5 - 0.1*ph)
		s := smoothstep(0, 0.5, t) * (1 - smoothstep(0.5, 1, t))
		return scale(0.3+0.7*s)(palette(0.3*u + 0.1*ph))
	}
}

func palette(t float64) (r, g, b float64) {
	const tau = 2 * math.Pi
	return 0.5 + 0.5*math.Cos(tau*t),
		0.5 + 0.5*math.Cos(tau*(t+0.33)),
		0.5 + 0.5*math.Cos(tau*(t+0.67))
}

func scale(k float64) func(r, g, b float64) (float64, float64, float64) {
	return func(r, g, b float64) (float64, float64, float64) {
		return r * k, g * k, b * k
	}
}

func fract(x float64) float64 { return x - math.Floor(x) }

func mix(a, b, t float64) float64 { return a + (b-a)*t }

// smoothstep matches GLSL, including reversed edges.
func smoothstep(e0, e1, x float64) float64 {
	t := math.Min(math.Max((x-e0)/(e1-e0), 0), 1)
	return t * t * (3 - 2*t)
}

// ParticleColor is the CPU twin of the particle fragment shader at
// distance dist from the sprite centre (0.5 is the edge).
func ParticleColor(speed, dist float64) (r, g, b, a float64) {
	if dist > 0.5 {
		return 0, 0, 0, 0
	}
	alpha := smoothstep(0.5, 0, dist)
	brightness := 0.4 + speed*0.8
	return mix(0.3, 1.0, speed), mix(0.4, 0.7, speed), mix(0.9, 0.9, speed), alpha * brightness
}

// PointSize is the sprite diameter in pixels for a normalized speed.
func PointSize(speed float64) float64 { return 3 + speed*12 }
