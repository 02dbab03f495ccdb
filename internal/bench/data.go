package bench

import (
	"bufio"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// 데이터셋 이름과 출처
const (
	AscendingName  = "ascending"
	DescendingName = "descending"
	RandomName     = "random"

	SourceMemory = "memory"
	SourceFile   = "file"
)

// Dataset 벤치마크 입력 배열. Data 는 카운터에 직접 넘기지 않고 매번 복사해서 쓴다.
type Dataset struct {
	Name   string
	Source string
	Data   []int
}

// Ascending 1..n
func Ascending(n int) []int {
	data := make([]int, n)
	for i := range data {
		data[i] = i + 1
	}
	return data
}

// Descending n..1, 역전 수 최대
func Descending(n int) []int {
	data := make([]int, n)
	for i := range data {
		data[i] = n - i
	}
	return data
}

// Random [1, n] 균등 분포. seed 가 0 이면 현재 시간 기반.
func Random(n int, seed int64) []int {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	data := make([]int, n)
	for i := range data {
		data[i] = rng.Intn(n) + 1
	}
	return data
}

// Datasets 오름차순, 내림차순, 랜덤 세 배열
func Datasets(n int, seed int64) []Dataset {
	return []Dataset{
		{Name: AscendingName, Source: SourceMemory, Data: Ascending(n)},
		{Name: DescendingName, Source: SourceMemory, Data: Descending(n)},
		{Name: RandomName, Source: SourceMemory, Data: Random(n, seed)},
	}
}

// LoadDataset 파일에서 읽은 데이터셋. 이름은 파일 이름.
func LoadDataset(path string) (Dataset, error) {
	data, err := ReadDataFile(path)
	if err != nil {
		return Dataset{}, err
	}
	return Dataset{Name: filepath.Base(path), Source: SourceFile, Data: data}, nil
}

// WriteDataFile 한 줄에 정수 하나씩 기록
func WriteDataFile(path string, data []int) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create data file")
	}
	defer file.Close()

	// 큰 버퍼 사용으로 I/O 성능 향상
	writer := bufio.NewWriterSize(file, 64*1024)
	for _, num := range data {
		writer.WriteString(strconv.Itoa(num))
		writer.WriteByte('\n')
	}

	if err := writer.Flush(); err != nil {
		return errors.Wrap(err, "write data file")
	}
	return file.Close()
}

// ReadDataFile 공백으로 구분된 정수를 읽는다. 음수가 나오면 목록 끝으로 보고 멈춘다.
func ReadDataFile(path string) ([]int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open data file")
	}
	defer file.Close()

	// 파일 크기로 대략적인 개수 추정 (평균 6자리 + 개행)
	var data []int
	if info, err := file.Stat(); err == nil {
		data = make([]int, 0, info.Size()/7)
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), bufio.MaxScanTokenSize)
	scanner.Split(bufio.ScanWords)

	for scanner.Scan() {
		token := strings.TrimSpace(scanner.Text())
		num, err := strconv.Atoi(token)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s item %d", filepath.Base(path), len(data))
		}
		if num < 0 {
			break
		}
		data = append(data, num)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read data file")
	}
	return data, nil
}
