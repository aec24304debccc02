package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type GameRecord struct {
	ID       int
	X        string // participant playing X
	O        string // participant playing O
	Winner   string // participant name, empty on a draw
	Moves    int
	Duration time.Duration
}

type TallyRecord struct {
	Participant string
	Role        string // X or O
	Wins        int
	Draws       int
	Losses      int
}

type Writer struct {
	runID   string
	baseDir string
}

// NewWriter creates <resultsDir>/<mode>/<run id> for one evaluation run.
func NewWriter(resultsDir, mode string) (*Writer, error) {
	runID := uuid.NewString()
	baseDir := filepath.Join(resultsDir, mode, runID)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		runID:   runID,
		baseDir: baseDir,
	}, nil
}

func (w *Writer) RunID() string {
	return w.runID
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.X,
			record.O,
			record.Winner,
			strconv.Itoa(record.Moves),
			record.Duration.String(),
		})
	}
	header := []string{"id", "x", "o", "winner", "moves", "duration"}
	return w.write("games.csv", header, rows)
}

func (w *Writer) WriteTallies(records []TallyRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Participant,
			record.Role,
			strconv.Itoa(record.Wins),
			strconv.Itoa(record.Draws),
			strconv.Itoa(record.Losses),
		})
	}
	header := []string{"participant", "role", "wins", "draws", "losses"}
	return w.write("tallies.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
