package utils

import (
	"math/rand"
)

// Point addresses a grid cell. X is the row, Y is the column.
type Point struct {
	X, Y int
}

func (p Point) ToIndex(width int) int {
	return ToIndex(p.X, p.Y, width)
}

func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Within reports whether p lies inside a width x height grid.
func (p Point) Within(width, height int) bool {
	return p.X >= 0 && p.X < height && p.Y >= 0 && p.Y < width
}

func ToIndex(x, y, width int) int {
	return x*width + y
}

func Midpoint(p1, p2 int) int {
	return (p2 + p1) / 2
}

func Average(nums ...float32) float32 {
	var total float32 = 0.0
	var count float32 = 0.0
	for _, num := range nums {
		total += num
		count++
	}
	return total / count
}

// Jitter shifts value by a uniform amount in [-scale, scale).
func Jitter(rng *rand.Rand, value, scale float32) float32 {
	random := rng.Float32() * scale * 2
	shift := scale - random
	return shift + value
}
