package codes

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/qrnoize/pkg/errors"
)

// Job is one header of a job file with the payload lines that follow it.
type Job struct {
	Symbology Symbology
	Data      []string
	Options   EncodeOptions
	Line      int // 1-based line of the header
}

// ParseJobs reads a job file. Blank lines between jobs are skipped; payload
// lines are taken verbatim after trimming surrounding whitespace.
func ParseJobs(r io.Reader) ([]Job, error) {
	var (
		jobs    []Job
		cur     *Job
		pending int
		lineNo  int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if pending > 0 {
			cur.Data = append(cur.Data, line)
			pending--
			continue
		}
		if line == "" {
			continue
		}
		job, amount, err := parseHeader(line, lineNo)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
		cur, pending = &jobs[len(jobs)-1], amount
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read job file")
	}
	if pending > 0 {
		return nil, errors.New(errors.ErrCodeConfigSyntax,
			"line %d: %s job expects %d more data line(s)", cur.Line, cur.Symbology, pending)
	}
	return jobs, nil
}

func parseHeader(line string, lineNo int) (Job, int, error) {
	fields := strings.Split(line, ":")
	if len(fields) < 2 {
		return Job{}, 0, errors.New(errors.ErrCodeConfigSyntax, "line %d: header %q needs type:amount", lineNo, line)
	}
	sym, err := ParseSymbology(fields[0])
	if err != nil {
		return Job{}, 0, errors.Wrap(errors.GetCode(err), err, "line %d", lineNo)
	}
	amount, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil || amount <= 0 {
		return Job{}, 0, errors.New(errors.ErrCodeConfigSyntax, "line %d: amount %q is not a positive integer", lineNo, fields[1])
	}

	job := Job{Symbology: sym, Line: lineNo}
	for _, f := range fields[2:] {
		f = strings.TrimSpace(f)
		if f == "" || f == "None" {
			continue
		}
		if err := job.Options.set(f); err != nil {
			return Job{}, 0, errors.Wrap(errors.ErrCodeConfigSyntax, err, "line %d", lineNo)
		}
	}
	return job, amount, nil
}

func (o *EncodeOptions) set(kv string) error {
	key, value, ok := strings.Cut(kv, "=")
	if !ok {
		return errors.New(errors.ErrCodeConfigSyntax, "option %q is not key=value", kv)
	}
	key, value = strings.TrimSpace(key), strings.TrimSpace(value)
	if key == "eclevel" {
		if _, err := qrLevel(value); err != nil {
			return err
		}
		o.Level = value
		return nil
	}

	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return errors.New(errors.ErrCodeConfigSyntax, "option %s=%q is not a non-negative integer", key, value)
	}
	switch key {
	case "size":
		o.Size = n
	case "quiet":
		o.QuietZone = n
	case "ecpercent":
		o.ECPercent = n
	case "layers":
		o.Layers = n
	default:
		return errors.New(errors.ErrCodeConfigSyntax, "unknown option %q", key)
	}
	return nil
}
