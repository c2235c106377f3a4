// Package vec defines the vector sample type consumed and produced by the codec.
//
// Codec logic only sees vectors through the Reader accessor set and builds
// results with New / New3; the storage behind Vector4 is private. Component
// arithmetic is dispatched to one of two backends chosen at build time:
//
//	go build ./...              // SIMD backend (github.com/viterin/vek)
//	go build -tags purego ./... // portable scalar backend
//
// Vector4 is a small value type and safe to copy and share between goroutines.
package vec

import "math"

// Reader is the component accessor set the codec consumes.
type Reader interface {
	X() float32
	Y() float32
	Z() float32
	W() float32
}

// Vector4 is a sample of up to four float32 components. Three-component
// samples carry w = 0.
type Vector4 struct {
	c [4]float32
}

var _ Reader = Vector4{}

// New builds a four-component vector.
func New(x, y, z, w float32) Vector4 {
	return Vector4{c: [4]float32{x, y, z, w}}
}

// New3 builds a three-component vector with w = 0.
func New3(x, y, z float32) Vector4 {
	return Vector4{c: [4]float32{x, y, z, 0}}
}

// Splat builds a vector with every component set to s.
func Splat(s float32) Vector4 {
	return Vector4{c: [4]float32{s, s, s, s}}
}

// FromReader copies the components of any Reader.
func FromReader(r Reader) Vector4 {
	if v, ok := r.(Vector4); ok {
		return v
	}

	return New(r.X(), r.Y(), r.Z(), r.W())
}

func (v Vector4) X() float32 { return v.c[0] }
func (v Vector4) Y() float32 { return v.c[1] }
func (v Vector4) Z() float32 { return v.c[2] }
func (v Vector4) W() float32 { return v.c[3] }

// Get returns component i (0=x ... 3=w). It panics when i is out of range.
func (v Vector4) Get(i int) float32 {
	return v.c[i]
}

// Components returns a copy of all four components.
func (v Vector4) Components() [4]float32 {
	return v.c
}

// Add returns v + o component-wise.
func (v Vector4) Add(o Vector4) Vector4 {
	r := v
	add(&r.c, &o.c)

	return r
}

// Sub returns v - o component-wise.
func (v Vector4) Sub(o Vector4) Vector4 {
	r := v
	sub(&r.c, &o.c)

	return r
}

// Mul returns v * o component-wise.
func (v Vector4) Mul(o Vector4) Vector4 {
	r := v
	mul(&r.c, &o.c)

	return r
}

// Div returns v / o component-wise. Division by zero follows IEEE 754.
func (v Vector4) Div(o Vector4) Vector4 {
	r := v
	div(&r.c, &o.c)

	return r
}

// Min returns the component-wise minimum.
func (v Vector4) Min(o Vector4) Vector4 {
	for i := range v.c {
		v.c[i] = min(v.c[i], o.c[i])
	}

	return v
}

// Max returns the component-wise maximum.
func (v Vector4) Max(o Vector4) Vector4 {
	for i := range v.c {
		v.c[i] = max(v.c[i], o.c[i])
	}

	return v
}

// MaxAbsDiff returns the largest |v_i - o_i| over all four components.
func (v Vector4) MaxAbsDiff(o Vector4) float32 {
	d := v.Sub(o)
	return maxAbs(&d.c, 4)
}

// MaxAbsDiff3 is MaxAbsDiff restricted to x, y and z.
func (v Vector4) MaxAbsDiff3(o Vector4) float32 {
	d := v.Sub(o)
	return maxAbs(&d.c, 3)
}

// NearlyEqual reports whether every component is within tol of o.
func (v Vector4) NearlyEqual(o Vector4, tol float32) bool {
	return v.MaxAbsDiff(o) <= tol
}

// NearlyEqual3 is NearlyEqual restricted to x, y and z.
func (v Vector4) NearlyEqual3(o Vector4, tol float32) bool {
	return v.MaxAbsDiff3(o) <= tol
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vector4) IsFinite() bool {
	for _, c := range v.c {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}

	return true
}
