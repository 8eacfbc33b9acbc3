// Package fixtures loads seed data described in YAML into a task database.
//
// A document lists workspaces, their items and the items' tasks. Tasks carry
// an optional symbolic key so that other tasks can name them as predecessor
// with `after`, in any order within the document:
//
//	workspaces:
//	  - name: Home
//	    items:
//	      - title: Garden
//	        tasks:
//	          - key: seeds
//	            content: Buy seeds
//	            priority: high
//	            due_in: 2d
//	            assignee: 1
//	          - content: Plant seeds
//	            after: seeds
//	            due_at: 2025-06-01T09:00:00Z
//	            assignee: 1
package fixtures

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/phrazzld/focus-api/internal/domain"
)

// ErrInvalidDocument is returned when a fixture document is malformed.
var ErrInvalidDocument = errors.New("invalid fixture document")

// Document is the root of a fixture file.
type Document struct {
	Workspaces []Workspace `yaml:"workspaces"`
}

// Workspace groups items.
type Workspace struct {
	Name  string `yaml:"name"`
	Items []Item `yaml:"items"`
}

// Item groups tasks.
type Item struct {
	Title string `yaml:"title"`
	Tasks []Task `yaml:"tasks"`
}

// Task describes one task. DueAt wins over DueIn when both are set.
// Sequence defaults to the task's 1-based position within its item.
type Task struct {
	Key             string     `yaml:"key"`
	Sequence        int        `yaml:"sequence"`
	Content         string     `yaml:"content"`
	Priority        string     `yaml:"priority"`
	DueAt           *time.Time `yaml:"due_at"`
	DueIn           string     `yaml:"due_in"`
	EstimatedHours  float64    `yaml:"estimated_hours"`
	ProgressPercent int        `yaml:"progress_percent"`
	After           string     `yaml:"after"`
	Completed       bool       `yaml:"completed"`
	Discarded       bool       `yaml:"discarded"`
	Assignee        int64      `yaml:"assignee"`
}

// Parse decodes a fixture document. Unknown fields are rejected.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// LoadFile reads and parses the fixture file at path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}
	return Parse(data)
}

// Validate checks names, priorities, due dates, keys and predecessor
// references. It does not touch the database.
func (d *Document) Validate() error {
	keys := make(map[string]bool)
	after := make(map[string]string)
	var refs []string

	for wi, ws := range d.Workspaces {
		if strings.TrimSpace(ws.Name) == "" {
			return invalid("workspaces[%d].name is required", wi)
		}
		for ii, item := range ws.Items {
			if strings.TrimSpace(item.Title) == "" {
				return invalid("%s.items[%d].title is required", ws.Name, ii)
			}
			for ti, task := range item.Tasks {
				where := fmt.Sprintf("%s/%s.tasks[%d]", ws.Name, item.Title, ti)
				if err := task.validate(where); err != nil {
					return err
				}
				if task.Key != "" {
					if keys[task.Key] {
						return invalid("%s: duplicate key %q", where, task.Key)
					}
					keys[task.Key] = true
				}
				if task.After != "" {
					if task.After == task.Key {
						return invalid("%s: task cannot come after itself", where)
					}
					refs = append(refs, task.After)
					if task.Key != "" {
						after[task.Key] = task.After
					}
				}
			}
		}
	}

	for _, ref := range refs {
		if !keys[ref] {
			return invalid("unknown predecessor key %q", ref)
		}
	}

	for start := range after {
		seen := map[string]bool{start: true}
		for k := after[start]; k != ""; k = after[k] {
			if seen[k] {
				return invalid("predecessor cycle through %q", start)
			}
			seen[k] = true
		}
	}
	return nil
}

func (t Task) validate(where string) error {
	if strings.TrimSpace(t.Content) == "" {
		return invalid("%s: content is required", where)
	}
	if t.Assignee <= 0 {
		return invalid("%s: assignee must be a positive user id", where)
	}
	if _, err := domain.ParsePriority(t.Priority); err != nil {
		return invalid("%s: %v", where, err)
	}
	if t.DueAt == nil && t.DueIn == "" {
		return invalid("%s: one of due_at or due_in is required", where)
	}
	if t.DueAt == nil {
		if _, err := ParseRelative(t.DueIn); err != nil {
			return invalid("%s: %v", where, err)
		}
	}
	if t.ProgressPercent < 0 || t.ProgressPercent > 100 {
		return invalid("%s: progress_percent must be between 0 and 100", where)
	}
	if t.EstimatedHours < 0 {
		return invalid("%s: estimated_hours cannot be negative", where)
	}
	return nil
}

// dueAt resolves the task's due date against now.
func (t Task) dueAt(now time.Time) (time.Time, error) {
	if t.DueAt != nil {
		return *t.DueAt, nil
	}
	d, err := ParseRelative(t.DueIn)
	if err != nil {
		return time.Time{}, err
	}
	return now.Add(d), nil
}

// ParseRelative parses a signed duration such as "-3h", "90m" or "2d".
// The "d" suffix means 24 hours.
func ParseRelative(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.ParseFloat(days, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid relative due %q", s)
		}
		return time.Duration(n * float64(24*time.Hour)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid relative due %q", s)
	}
	return d, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidDocument, fmt.Sprintf(format, args...))
}
