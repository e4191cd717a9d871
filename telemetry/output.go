package telemetry

import (
	"bytes"
	"fmt"

	"github.com/gocarina/gocsv"
	"go.uber.org/multierr"
	billy "gopkg.in/src-d/go-billy.v4"
	"gopkg.in/src-d/go-billy.v4/osfs"
	"gopkg.in/src-d/go-billy.v4/util"

	"github.com/pthm-cable/evgen/config"
)

// Output file names.
const (
	EpochsFile     = "epochs.csv"
	PerfFile       = "perf.csv"
	BookmarksFile  = "bookmarks.csv"
	ConfigFile     = "config.yaml"
	HallOfFameFile = "hall_of_fame.json"
)

// csvLog appends gocsv records to a file, writing the header once.
type csvLog struct {
	file          billy.File
	headerWritten bool
}

func (l *csvLog) write(records any) error {
	if !l.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, l.file); err != nil {
			return err
		}
		l.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, l.file)
}

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	fs        billy.Filesystem
	epochs    *csvLog
	perf      *csvLog
	bookmarks *csvLog
}

// NewOutputManager creates an output manager rooted at dir on the local disk.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := osfs.New("").MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return NewOutputManagerFS(osfs.New(dir))
}

// NewOutputManagerFS creates an output manager writing into fs.
func NewOutputManagerFS(fs billy.Filesystem) (*OutputManager, error) {
	om := &OutputManager{fs: fs}

	open := func(name string) (*csvLog, error) {
		f, err := fs.Create(name)
		if err != nil {
			return nil, fmt.Errorf("creating %s: %w", name, err)
		}
		return &csvLog{file: f}, nil
	}

	var err error
	if om.epochs, err = open(EpochsFile); err != nil {
		return nil, err
	}
	if om.perf, err = open(PerfFile); err != nil {
		return nil, multierr.Append(err, om.Close())
	}
	if om.bookmarks, err = open(BookmarksFile); err != nil {
		return nil, multierr.Append(err, om.Close())
	}
	return om, nil
}

// WriteConfig saves the configuration the run used as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := util.WriteFile(om.fs, ConfigFile, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", ConfigFile, err)
	}
	return nil
}

// WriteStats writes a window stats record to epochs.csv.
func (om *OutputManager) WriteStats(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := om.epochs.write([]WindowStats{stats}); err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}
	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int) error {
	if om == nil {
		return nil
	}
	if err := om.perf.write([]PerfStatsCSV{stats.ToCSV(windowEnd)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteBookmark writes a bookmark record to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	if err := om.bookmarks.write([]Bookmark{b}); err != nil {
		return fmt.Errorf("writing bookmark: %w", err)
	}
	return nil
}

// WriteHallOfFame saves the hall of fame as JSON.
func (om *OutputManager) WriteHallOfFame(hof *HallOfFame) error {
	if om == nil || hof == nil {
		return nil
	}

	data, err := hof.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshaling hall of fame: %w", err)
	}
	if err := util.WriteFile(om.fs, HallOfFameFile, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", HallOfFameFile, err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.fs.Root()
}

// Close closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var err error
	for _, l := range []*csvLog{om.epochs, om.perf, om.bookmarks} {
		if l != nil {
			err = multierr.Append(err, l.file.Close())
		}
	}
	return err
}
