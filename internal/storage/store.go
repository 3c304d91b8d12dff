package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adtzlr/pacopy/internal/continuation"
)

// Store persists continuation runs under a base directory, one subdirectory
// per run with metadata.json and branch.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID             string             `json:"id"`
	Problem        string             `json:"problem"`
	Algorithm      string             `json:"algorithm"`
	Timestamp      time.Time          `json:"timestamp"`
	Lmbda0         float64            `json:"lambda0"`
	MaxSteps       int                `json:"max_steps"`
	StepSize       float64            `json:"step_size"`
	NewtonTol      float64            `json:"newton_tol"`
	MaxNewtonSteps int                `json:"max_newton_steps"`
	Steps          int                `json:"steps"`
	Metrics        map[string]float64 `json:"metrics"`
}

// Save writes a run directory and returns its id. The CSV layout is one row
// per accepted step: step, lambda, norm, then the components of u.
func (s *Store) Save(meta RunMetadata, branch *continuation.Branch[[]float64]) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Problem, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Steps = branch.Len()

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "branch.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if branch.Len() == 0 {
		return runID, nil
	}

	header := []string{"step", "lambda", "norm"}
	for i := range branch.Points[0].U {
		header = append(header, fmt.Sprintf("u%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, p := range branch.Points {
		row := []string{
			strconv.Itoa(p.Step),
			strconv.FormatFloat(p.Lmbda, 'g', 17, 64),
			strconv.FormatFloat(norm(p.U), 'g', 17, 64),
		}
		for _, v := range p.U {
			row = append(row, strconv.FormatFloat(v, 'g', 17, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func norm(u []float64) float64 {
	sum := 0.0
	for _, v := range u {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadBranch reads branch.csv back: lambdas, solution norms, and the raw
// solution vectors per accepted step.
func (s *Store) LoadBranch(runID string) (lmbdas, norms []float64, states [][]float64, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "branch.csv"))
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, []float64{}, [][]float64{}, nil
	}

	for _, record := range records[1:] {
		if len(record) < 3 {
			continue
		}
		l, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		n, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}
		u := make([]float64, 0, len(record)-3)
		for _, field := range record[3:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				continue
			}
			u = append(u, v)
		}
		lmbdas = append(lmbdas, l)
		norms = append(norms, n)
		states = append(states, u)
	}
	return lmbdas, norms, states, nil
}
