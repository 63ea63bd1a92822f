package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, Average(nil))
	assert.Equal(t, 5.0, Average([]float64{5}))
	assert.Equal(t, 20.0, Average([]float64{10, 20, 30}))
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, Median(nil))
	assert.Equal(t, 20.0, Median([]float64{30, 10, 20}))
	// Even length averages the two middle values.
	assert.Equal(t, 25.0, Median([]float64{40, 10, 20, 30}))
}

func TestStandardDeviation(t *testing.T) {
	assert.Equal(t, 0.0, StandardDeviation(nil))
	assert.Equal(t, 0.0, StandardDeviation([]float64{5, 5, 5}))
	// Population standard deviation of {2,4,4,4,5,5,7,9} is exactly 2.
	assert.InDelta(t, 2.0, StandardDeviation([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-9)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(10, 0))
	assert.Equal(t, 25.0, Percentage(25, 100))
}

func TestPercentageChange(t *testing.T) {
	assert.Equal(t, 0.0, PercentageChange(0, 0))
	assert.Equal(t, 100.0, PercentageChange(0, 50))
	// A zero baseline only counts as growth when the new value is
	// actually positive.
	assert.Equal(t, 0.0, PercentageChange(0, -50))
	assert.Equal(t, -50.0, PercentageChange(100, 50))
	assert.Equal(t, 20.0, PercentageChange(100, 120))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 3.14, Round2(3.14159))
	assert.Equal(t, 2.68, Round2(2.675000001))
}

func TestDetectOutliers(t *testing.T) {
	assert.Nil(t, DetectOutliers(nil, 2))
	// Identical values have zero deviation and no outliers.
	assert.Nil(t, DetectOutliers([]float64{5, 5, 5, 5}, 2))

	values := []float64{10, 12, 11, 9, 10, 11, 10, 12, 9, 100}
	outliers := DetectOutliers(values, 2)
	assert.Equal(t, []float64{100}, outliers)
}
