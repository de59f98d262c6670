package utils

import (
	"math"
	"math/cmplx"
)

type Float interface {
	~float32 | ~float64
}

type Complex interface {
	~complex64 | ~complex128
}

type Number interface {
	Float | Complex
}

// Vector3 is a three component value used for positions (real) and field samples (complex)
type Vector3[T Number] [3]T

func NewVector3[T Number](x, y, z T) Vector3[T] {
	return Vector3[T]{x, y, z}
}

func (v Vector3[T]) X() T { return v[0] }
func (v Vector3[T]) Y() T { return v[1] }
func (v Vector3[T]) Z() T { return v[2] }

func (v Vector3[T]) Add(w Vector3[T]) Vector3[T] {
	return Vector3[T]{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

func (v Vector3[T]) Sub(w Vector3[T]) Vector3[T] {
	return Vector3[T]{v[0] - w[0], v[1] - w[1], v[2] - w[2]}
}

func (v Vector3[T]) Scale(a T) Vector3[T] {
	return Vector3[T]{v[0] * a, v[1] * a, v[2] * a}
}

// SubScale returns (v - w) * a
func (v Vector3[T]) SubScale(w Vector3[T], a T) Vector3[T] {
	return Vector3[T]{(v[0] - w[0]) * a, (v[1] - w[1]) * a, (v[2] - w[2]) * a}
}

// Dot is the bilinear product, complex components are not conjugated
func (v Vector3[T]) Dot(w Vector3[T]) T {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

func (v Vector3[T]) Cross(w Vector3[T]) Vector3[T] {
	return Vector3[T]{
		v[1]*w[2] - v[2]*w[1],
		v[2]*w[0] - v[0]*w[2],
		v[0]*w[1] - v[1]*w[0],
	}
}

func RealNorm[T Float](v Vector3[T]) float64 {
	x, y, z := float64(v[0]), float64(v[1]), float64(v[2])
	return math.Sqrt(x*x + y*y + z*z)
}

func ComplexNorm[T Complex](v Vector3[T]) float64 {
	var sum float64
	for _, c := range v {
		a := cmplx.Abs(complex128(c))
		sum += a * a
	}
	return math.Sqrt(sum)
}

func ToFloat64[T Float](v Vector3[T]) Vector3[float64] {
	return Vector3[float64]{float64(v[0]), float64(v[1]), float64(v[2])}
}

func FromFloat64[T Float](v Vector3[float64]) Vector3[T] {
	return Vector3[T]{T(v[0]), T(v[1]), T(v[2])}
}

func ToComplex128[T Complex](v Vector3[T]) Vector3[complex128] {
	return Vector3[complex128]{complex128(v[0]), complex128(v[1]), complex128(v[2])}
}

func FromComplex128[T Complex](v Vector3[complex128]) Vector3[T] {
	return Vector3[T]{T(v[0]), T(v[1]), T(v[2])}
}

// ToComplex lifts a real vector into a complex one with zero imaginary parts
func ToComplex[FT Float, CT Complex](v Vector3[FT]) Vector3[CT] {
	return Vector3[CT]{
		CT(complex(float64(v[0]), 0)),
		CT(complex(float64(v[1]), 0)),
		CT(complex(float64(v[2]), 0)),
	}
}
