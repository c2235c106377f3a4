//go:build purego

package vec

// Backend names the arithmetic implementation compiled in.
const Backend = "purego"

func add(dst, o *[4]float32) {
	for i := range dst {
		dst[i] += o[i]
	}
}

func sub(dst, o *[4]float32) {
	for i := range dst {
		dst[i] -= o[i]
	}
}

func mul(dst, o *[4]float32) {
	for i := range dst {
		dst[i] *= o[i]
	}
}

func div(dst, o *[4]float32) {
	for i := range dst {
		dst[i] /= o[i]
	}
}

func maxAbs(c *[4]float32, n int) float32 {
	var m float32
	for _, v := range c[:n] {
		if v < 0 {
			v = -v
		}
		if v > m {
			m = v
		}
	}

	return m
}
