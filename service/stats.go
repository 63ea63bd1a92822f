package service

import (
	"math"
	"sort"
)

// Statistics helpers shared by the analytics services. All of them are
// defined for empty input and return 0 rather than NaN.

// Sum returns the total of the values.
func Sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// Average returns the arithmetic mean, 0 for an empty slice.
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return Sum(values) / float64(len(values))
}

// Median returns the middle value, averaging the two central values for
// an even-length slice. The input is not modified.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// StandardDeviation returns the population standard deviation.
func StandardDeviation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Average(values)
	var sumSquares float64
	for _, v := range values {
		d := v - mean
		sumSquares += d * d
	}
	return math.Sqrt(sumSquares / float64(len(values)))
}

// Percentage returns value as a percentage of total, 0 when total is 0.
func Percentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return value / total * 100
}

// PercentageChange returns the relative change from old to new in
// percent. A change from 0 to a positive value counts as 100%; from 0
// to anything else as 0.
func PercentageChange(oldValue, newValue float64) float64 {
	if oldValue == 0 {
		if newValue > 0 {
			return 100
		}
		return 0
	}
	return (newValue - oldValue) / oldValue * 100
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// DetectOutliers returns the values whose Z-score against the slice
// mean exceeds the threshold. A zero standard deviation yields no
// outliers.
func DetectOutliers(values []float64, threshold float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	mean := Average(values)
	stdDev := StandardDeviation(values)
	if stdDev == 0 {
		return nil
	}

	var outliers []float64
	for _, v := range values {
		if math.Abs(v-mean)/stdDev > threshold {
			outliers = append(outliers, v)
		}
	}
	return outliers
}
