package manager

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"
)

// ScoreManager persists final scores as an append-only text file holding one
// decimal integer per line.
type ScoreManager struct {
	path   string
	logger zerolog.Logger
}

// ScoreSummary aggregates the whole score history.
type ScoreSummary struct {
	Games  int
	Mean   float64
	Median float64
	Max    int
}

// ScoreRecord is one row of the CSV export.
type ScoreRecord struct {
	Rank  int `csv:"rank"`
	Score int `csv:"score"`
}

func NewScoreManager(path string, logger zerolog.Logger) *ScoreManager {
	return &ScoreManager{
		path:   path,
		logger: logger.With().Str("component", "scores").Logger(),
	}
}

// Path returns the score file location.
func (sm *ScoreManager) Path() string {
	return sm.path
}

// Append writes score as a new line at the end of the file, creating it if needed.
func (sm *ScoreManager) Append(score int) error {
	if dir := filepath.Dir(sm.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating score directory: %w", err)
		}
	}

	f, err := os.OpenFile(sm.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening score file: %w", err)
	}
	if _, err := fmt.Fprintf(f, "%d\n", score); err != nil {
		f.Close()
		return fmt.Errorf("writing score file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing score file: %w", err)
	}

	sm.logger.Debug().Int("score", score).Str("path", sm.path).Msg("score saved")
	return nil
}

// Load returns every parseable score in file order. A missing file is an
// empty history and lines that are not integers are skipped.
func (sm *ScoreManager) Load() ([]int, error) {
	f, err := os.Open(sm.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening score file: %w", err)
	}
	defer f.Close()

	scores, skipped, err := parseScores(f)
	if err != nil {
		return nil, fmt.Errorf("reading score file: %w", err)
	}
	if skipped > 0 {
		sm.logger.Debug().Int("skipped", skipped).Str("path", sm.path).Msg("malformed score lines ignored")
	}
	return scores, nil
}

func parseScores(r io.Reader) (scores []int, skipped int, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		score, convErr := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if convErr != nil {
			skipped++
			continue
		}
		scores = append(scores, score)
	}
	return scores, skipped, scanner.Err()
}

// Ranked returns the best n scores, highest first. n <= 0 returns them all.
func (sm *ScoreManager) Ranked(n int) ([]int, error) {
	scores, err := sm.Load()
	if err != nil {
		return nil, err
	}
	return Rank(scores, n), nil
}

// Rank returns a copy of scores sorted highest first, capped at n when n > 0.
func Rank(scores []int, n int) []int {
	sorted := append([]int(nil), scores...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Summarize computes aggregate statistics over scores. The median is the
// empirical one, so an even count yields the lower middle value.
func Summarize(scores []int) ScoreSummary {
	if len(scores) == 0 {
		return ScoreSummary{}
	}

	values := make([]float64, len(scores))
	maxScore := scores[0]
	for i, s := range scores {
		values[i] = float64(s)
		if s > maxScore {
			maxScore = s
		}
	}
	sort.Float64s(values)

	return ScoreSummary{
		Games:  len(scores),
		Mean:   stat.Mean(values, nil),
		Median: stat.Quantile(0.5, stat.Empirical, values, nil),
		Max:    maxScore,
	}
}

// ExportCSV writes the ranked score list to w with a header row.
func (sm *ScoreManager) ExportCSV(w io.Writer) error {
	ranked, err := sm.Ranked(0)
	if err != nil {
		return err
	}

	records := make([]*ScoreRecord, len(ranked))
	for i, s := range ranked {
		records[i] = &ScoreRecord{Rank: i + 1, Score: s}
	}
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("exporting scores: %w", err)
	}
	return nil
}
