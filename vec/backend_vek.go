//go:build !purego

package vec

import "github.com/viterin/vek/vek32"

// Backend names the arithmetic implementation compiled in.
const Backend = "vek"

func add(dst, o *[4]float32) { vek32.Add_Inplace(dst[:], o[:]) }
func sub(dst, o *[4]float32) { vek32.Sub_Inplace(dst[:], o[:]) }
func mul(dst, o *[4]float32) { vek32.Mul_Inplace(dst[:], o[:]) }
func div(dst, o *[4]float32) { vek32.Div_Inplace(dst[:], o[:]) }

func maxAbs(c *[4]float32, n int) float32 {
	tmp := *c
	vek32.Abs_Inplace(tmp[:n])

	return vek32.Max(tmp[:n])
}
