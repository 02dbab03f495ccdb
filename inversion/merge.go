// Package inversion 정수 수열의 역전(inversion) 쌍을 세는 카운터 모음.
// 모든 카운터는 같은 입력에 대해 같은 값을 돌려준다.
package inversion

import "github.com/pkg/errors"

// CountAndSort seq[low..high] (양 끝 포함) 구간의 역전 수를 머지소트로 센다.
// 반환 시 해당 구간은 오름차순으로 정렬되어 있고 구간 밖은 건드리지 않는다.
// low == high+1 은 빈 구간으로 0 을 돌려준다.
func CountAndSort(seq []int, low, high int) (int64, error) {
	if low < 0 || high >= len(seq) || low > high+1 {
		return 0, errors.Wrapf(ErrInvalidRange, "low=%d high=%d len=%d", low, high, len(seq))
	}
	if low >= high {
		return 0, nil
	}

	sub := seq[low : high+1]
	// 병합용 버퍼는 호출당 한 번만 할당해서 재사용
	buf := make([]int, len(sub))
	return mergeCount(sub, buf, 0, len(sub)-1), nil
}

// MergeCount 전체 슬라이스 버전. seq 를 정렬한다.
func MergeCount(seq []int) int64 {
	if len(seq) < 2 {
		return 0
	}
	buf := make([]int, len(seq))
	return mergeCount(seq, buf, 0, len(seq)-1)
}

// mergeCount 분할 정복 재귀
func mergeCount(seq, buf []int, low, high int) int64 {
	if low >= high {
		return 0
	}

	mid := low + (high-low)/2
	left := mergeCount(seq, buf, low, mid)
	right := mergeCount(seq, buf, mid+1, high)

	return left + right + merge(seq, buf, low, mid, high)
}

// merge 정렬된 두 런 seq[low..mid], seq[mid+1..high] 를 병합하며 교차 역전을 센다.
// buf 는 seq 와 같은 인덱스를 쓴다. 왼쪽 런만 복사하면 충분하다:
// 쓰기 위치 k 는 항상 오른쪽 커서 j 보다 앞에 있다.
func merge(seq, buf []int, low, mid, high int) int64 {
	left := buf[low : mid+1]
	copy(left, seq[low:mid+1])

	var count int64
	i, j, k := 0, mid+1, low

	for i < len(left) && j <= high {
		if left[i] <= seq[j] {
			seq[k] = left[i]
			i++
		} else {
			// 남은 왼쪽 원소 전부가 seq[j] 보다 크다
			seq[k] = seq[j]
			j++
			count += int64(len(left) - i)
		}
		k++
	}

	// 남은 왼쪽 런 복사. 오른쪽 나머지는 이미 제자리
	copy(seq[k:], left[i:])

	return count
}
