// Package legacy reads the legacy CMS database. Every query goes through a
// Source, which returns one tab-separated line per row.
package legacy

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	// NullMarker is how the legacy client prints SQL NULL.
	NullMarker = "NULL"

	defaultMaxOutput = 50 * 1024 * 1024
)

var (
	// ErrQueryFailed is returned when the legacy database rejects a query.
	ErrQueryFailed = errors.New("legacy query failed")
	// ErrOutputTooLarge is returned when a query produces more output than allowed.
	ErrOutputTooLarge = errors.New("legacy query output too large")
)

// Source runs a read-only query and returns its rows.
type Source interface {
	Query(ctx context.Context, query string) ([]string, error)
}

var (
	_ Source = (*CommandSource)(nil)
	_ Source = (*GormSource)(nil)
	_ Source = (*MemorySource)(nil)
)

// CommandSource shells out to a database command line client in batch mode,
// `ddev mysql -N -e <query>` by default.
type CommandSource struct {
	Dir       string
	Command   string
	Args      []string
	MaxOutput int
}

// NewCommandSource creates a source running `ddev mysql` inside dir.
func NewCommandSource(dir string) *CommandSource {
	return &CommandSource{
		Dir:       dir,
		Command:   "ddev",
		Args:      []string{"mysql", "-N", "-e"},
		MaxOutput: defaultMaxOutput,
	}
}

func (s *CommandSource) Query(ctx context.Context, query string) ([]string, error) {
	args := append(append([]string{}, s.Args...), query)
	cmd := exec.CommandContext(ctx, s.Command, args...)
	cmd.Dir = s.Dir

	limit := s.MaxOutput
	if limit <= 0 {
		limit = defaultMaxOutput
	}
	stdout := &cappedBuffer{limit: limit}
	var stderr bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = &stderr

	logrus.Debugf("running legacy query via %s", s.Command)
	if err := cmd.Run(); err != nil {
		if stdout.overflow {
			return nil, ErrOutputTooLarge
		}
		return nil, fmt.Errorf("%w: %v: %s", ErrQueryFailed, err, strings.TrimSpace(stderr.String()))
	}

	return SplitRows(stdout.String()), nil
}

type cappedBuffer struct {
	bytes.Buffer
	limit    int
	overflow bool
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	if b.Len()+len(p) > b.limit {
		b.overflow = true
		return 0, ErrOutputTooLarge
	}
	return b.Buffer.Write(p)
}

// SplitRows splits client output into non-empty lines.
func SplitRows(output string) []string {
	output = strings.Trim(output, "\r\n")
	if output == "" {
		return nil
	}

	lines := strings.Split(output, "\n")
	rows := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if len(line) > 0 {
			rows = append(rows, line)
		}
	}
	return rows
}

// GormSource runs queries on a database connection and renders each row
// the way the mysql batch client does: tab separated, NULL for SQL NULL,
// tabs and newlines inside values escaped.
type GormSource struct {
	db *gorm.DB
}

func NewGormSource(db *gorm.DB) *GormSource {
	return &GormSource{db: db}
}

var cellEscaper = strings.NewReplacer("\t", `\t`, "\n", `\n`, "\r", "")

func (s *GormSource) Query(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	values := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	var lines []string
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
		}

		cells := make([]string, len(values))
		for i, v := range values {
			if !v.Valid {
				cells[i] = NullMarker
				continue
			}
			cells[i] = cellEscaper.Replace(v.String)
		}
		lines = append(lines, strings.Join(cells, "\t"))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}

	return lines, nil
}

// MemorySource answers queries from rows registered up front. Unknown
// queries return no rows.
type MemorySource struct {
	mu      sync.Mutex
	rows    map[string][]string
	errs    map[string]error
	queries []string
}

func NewMemorySource() *MemorySource {
	return &MemorySource{
		rows: make(map[string][]string),
		errs: make(map[string]error),
	}
}

// Set registers the rows returned for query.
func (s *MemorySource) Set(query string, rows ...string) *MemorySource {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[query] = rows
	return s
}

// Fail makes query return err.
func (s *MemorySource) Fail(query string, err error) *MemorySource {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[query] = err
	return s
}

// Queries returns every query received, in order.
func (s *MemorySource) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.queries...)
}

func (s *MemorySource) Query(ctx context.Context, query string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queries = append(s.queries, query)
	if err, ok := s.errs[query]; ok {
		return nil, err
	}
	return append([]string{}, s.rows[query]...), nil
}
