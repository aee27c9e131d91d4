package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/voxfield/nsweep/pkg/domain"
	"github.com/voxfield/nsweep/pkg/grid"
)

func TestSize(t *testing.T) {
	axes := []domain.Axis{
		{Name: "f_grid_resolution", Values: []string{"128", "256"}},
		{Name: "f_init", Values: []string{"ones", "zeros", "rand"}},
		{Name: "sigma", Values: []string{"1", "2", "4", "8"}},
	}
	assert.Equal(t, 24, grid.Size(axes))

	t.Run("NoAxes", func(t *testing.T) {
		assert.Equal(t, 0, grid.Size(nil))
	})

	t.Run("EmptyAxis", func(t *testing.T) {
		axes := []domain.Axis{
			{Name: "f_init", Values: []string{"ones"}},
			{Name: "sigma", Values: nil},
		}
		assert.Equal(t, 0, grid.Size(axes))
		assert.Nil(t, grid.Points(axes))
	})
}

func TestPoints_TwoAxes(t *testing.T) {
	// resolution × initialization = 2 × 3 = 6 invocations; first is
	// 128/ones, last is 256/rand.
	axes := []domain.Axis{
		{Name: "resolution", Values: []string{"128", "256"}},
		{Name: "initialization", Values: []string{"ones", "zeros", "rand"}},
	}

	points := grid.Points(axes)
	assert.Len(t, points, 6)

	assert.Equal(t, domain.GridPoint{
		{Axis: "resolution", Value: "128"},
		{Axis: "initialization", Value: "ones"},
	}, points[0])

	assert.Equal(t, domain.GridPoint{
		{Axis: "resolution", Value: "256"},
		{Axis: "initialization", Value: "rand"},
	}, points[5])

	// First axis spins slowest.
	assert.Equal(t, "128", points[2][0].Value)
	assert.Equal(t, "256", points[3][0].Value)
	assert.Equal(t, "ones", points[3][1].Value)
}

func TestPoints_SingleAxis(t *testing.T) {
	axes := []domain.Axis{
		{Name: "resolutions", Values: []string{"64", "128", "192", "256", "320", "384", "448"}},
	}

	points := grid.Points(axes)
	assert.Len(t, points, 7)
	for i, want := range axes[0].Values {
		assert.Equal(t, want, points[i][0].Value)
	}
}

func TestPoints_Deterministic(t *testing.T) {
	axes := []domain.Axis{
		{Name: "g_transition_alpha", Values: []string{"2.0", "4.0", "8.0"}},
		{Name: "g_transition_function", Values: []string{"sigmoid", "tanh"}},
	}

	first := grid.Points(axes)
	second := grid.Points(axes)
	assert.Equal(t, first, second)
}

func TestPoints_NamesUnique(t *testing.T) {
	s := domain.NewSweep("exp")
	s.Axes = []domain.Axis{
		{Name: "sigma", Values: []string{"1", "2"}},
		{Name: "f_init", Values: []string{"ones", "zeros"}},
	}

	seen := make(map[string]bool)
	for i, p := range grid.Points(s.Axes) {
		name := s.Invocation(p, i).Name
		assert.False(t, seen[name], "duplicate experiment name %q", name)
		seen[name] = true
	}
	assert.Len(t, seen, 4)
}
