package inversion

// BruteForce 모든 쌍 i < j 를 비교하는 O(n²) 기준 카운터. seq 를 바꾸지 않는다.
func BruteForce(seq []int) int64 {
	var count int64
	for i := 0; i < len(seq); i++ {
		for j := i + 1; j < len(seq); j++ {
			if seq[i] > seq[j] {
				count++
			}
		}
	}
	return count
}

// InsertionCount 삽입정렬 기반 카운터. seq 를 정렬한다.
// 한 칸 뒤로 미는 시프트 하나가 역전 하나를 해소하므로 시프트 수가 곧 역전 수.
func InsertionCount(seq []int) int64 {
	var count int64
	for i := 1; i < len(seq); i++ {
		key := seq[i]
		j := i - 1

		for j >= 0 && seq[j] > key {
			seq[j+1] = seq[j]
			j--
			count++
		}
		seq[j+1] = key
	}
	return count
}
