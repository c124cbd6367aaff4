// Package gm provides the geometric primitives for four-dimensional
// euclidean space: a Vec4 vector type, a Bivector plane type and a Rotor
// for orientation.
package gm
