package vmperf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ReportRecord is one printed report as stored in a session log.
type ReportRecord struct {
	Name                string    `json:"name"`
	Cores               uint      `json:"cores"`
	ElapsedTime         float64   `json:"elapsed_time"`
	TotalOps            float64   `json:"total_ops"`
	PeakThroughput      float64   `json:"peak_ops_per_sec"`
	ArithmeticIntensity float64   `json:"ops_per_ns"`
	MeanFrequency       float64   `json:"mean_freq_hz"`
	Samples             uint64    `json:"samples"`
	CorePeaks           []float64 `json:"core_peaks,omitempty"`
	Timestamp           time.Time `json:"timestamp"`
}

// Session is the content of one session log file.
type Session struct {
	Host     string         `json:"host,omitempty"`
	Family   string         `json:"family"`
	Features string         `json:"features,omitempty"`
	Started  time.Time      `json:"started"`
	Reports  []ReportRecord `json:"reports"`
}

// ReportLogger writes reports to a JSON session file, rewriting the file
// after every record.
type ReportLogger struct {
	mu      sync.Mutex
	session Session
	file    string
}

// NewReportLogger creates dir if needed and starts a session file named
// after sessionName and the current time.
func NewReportLogger(dir, sessionName string, header Session) (*ReportLogger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	if header.Started.IsZero() {
		header.Started = time.Now()
	}
	header.Reports = nil
	l := &ReportLogger{
		session: header,
		file: filepath.Join(dir,
			fmt.Sprintf("%s_%s.json", sessionName, header.Started.Format("20060102_150405"))),
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l, l.flush()
}

// Path returns the session file path.
func (l *ReportLogger) Path() string {
	return l.file
}

// Record appends r to the session and flushes it to disk.
func (l *ReportLogger) Record(r *PerfReport) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.session.Reports = append(l.session.Reports, ReportRecord{
		Name:                r.Name,
		Cores:               r.CoreDivisor,
		ElapsedTime:         r.ElapsedTime,
		TotalOps:            r.TotalOps,
		PeakThroughput:      r.PeakThroughput(),
		ArithmeticIntensity: r.ArithmeticIntensity(),
		MeanFrequency:       r.MeanFrequency(),
		Samples:             r.SampleCount,
		CorePeaks:           r.CorePeaks(),
		Timestamp:           time.Now(),
	})
	return l.flush()
}

func (l *ReportLogger) flush() error {
	data, err := json.MarshalIndent(l.session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return os.WriteFile(l.file, data, 0644)
}

// LoadSession reads a session file written by ReportLogger.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &s, nil
}

// LatestSession returns the most recently modified session file in dir.
func LatestSession(dir string) (string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return "", err
	}

	var latest string
	var latestTime time.Time
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latest = file
			latestTime = info.ModTime()
		}
	}
	if latest == "" {
		return "", fmt.Errorf("no session logs in %s", dir)
	}
	return latest, nil
}

// Samples groups the peak throughput of every record by operation name.
func (s *Session) Samples() map[string][]float64 {
	out := make(map[string][]float64)
	for _, r := range s.Reports {
		out[r.Name] = append(out[r.Name], r.PeakThroughput)
	}
	return out
}
