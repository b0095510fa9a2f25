// Package partition provides an in-place, non-stable quicksort driven by a
// three-way comparator that receives a caller supplied context value on every
// invocation.
package partition

// Sort data in place using the three-way comparator cmp. The comparator
// returns a negative value if a sorts before b, a positive value if a sorts
// after b and zero if they are equivalent; ctx is passed to every call
// unchanged.
//
// The last element of every sub-range is used as the pivot, so already sorted
// input degrades to quadratic time. The sort is not stable.
func Sort[T any, C any](data []T, cmp func(a, b *T, ctx C) int, ctx C) {
	if len(data) < 2 {
		return
	}

	pivotIndex := Partition(data, cmp, ctx)
	Sort(data[:pivotIndex], cmp, ctx)
	Sort(data[pivotIndex+1:], cmp, ctx)
}

// Partition data around its last element and return the final index of the
// pivot. Elements that compare less than the pivot end up before it and all
// other elements after it. Partition expects a non-empty slice.
func Partition[T any, C any](data []T, cmp func(a, b *T, ctx C) int, ctx C) int {
	last := len(data) - 1
	pivot := &data[last]

	i := 0
	for j := 0; j < last; j++ {
		if cmp(&data[j], pivot, ctx) < 0 {
			data[i], data[j] = data[j], data[i]
			i++
		}
	}
	data[i], data[last] = data[last], data[i]
	return i
}
