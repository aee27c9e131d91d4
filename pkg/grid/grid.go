package grid

import "github.com/voxfield/nsweep/pkg/domain"

// Size returns the number of points in the product (n1 × … × nk).
// Zero axes yields zero; so does any axis with no values.
func Size(axes []domain.Axis) int {
	if len(axes) == 0 {
		return 0
	}
	size := 1
	for _, ax := range axes {
		size *= len(ax.Values)
	}
	return size
}

// Points enumerates the full Cartesian product in declaration order.
// Each point holds one (axis, value) pair per axis, outer axis slowest.
func Points(axes []domain.Axis) []domain.GridPoint {
	size := Size(axes)
	if size == 0 {
		return nil
	}

	points := make([]domain.GridPoint, 0, size)
	indices := make([]int, len(axes))

	for {
		point := make(domain.GridPoint, len(axes))
		for i, ax := range axes {
			point[i] = domain.AxisValue{Axis: ax.Name, Value: ax.Values[indices[i]]}
		}
		points = append(points, point)

		// Odometer increment: last axis spins fastest.
		i := len(axes) - 1
		for i >= 0 {
			indices[i]++
			if indices[i] < len(axes[i].Values) {
				break
			}
			indices[i] = 0
			i--
		}
		if i < 0 {
			return points
		}
	}
}
