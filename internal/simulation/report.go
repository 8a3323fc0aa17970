package simulation

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	iterationsPrefix = "number of iterations = "
	bucketsHeader    = "number of buckets"
	separator        = "; "
)

var ErrMalformedReport = errors.New("malformed simulation report")

// WriteReport writes res as ';'-separated text: an iterations line, a header with a mean and
// a variance column per series, and one row per bucket count.
func WriteReport(w io.Writer, res *Result) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(iterationsPrefix + strconv.Itoa(res.Iterations) + "\n")
	bw.WriteString(bucketsHeader)
	for _, s := range res.Series {
		bw.WriteString(separator + "mean" + s.Label)
		bw.WriteString(separator + "variance" + s.Label)
	}
	bw.WriteByte('\n')

	for i, n := range res.BucketCounts {
		bw.WriteString(strconv.FormatInt(int64(n), 10))
		for _, s := range res.Series {
			bw.WriteString(separator + strconv.FormatFloat(s.Mean[i], 'g', -1, 64))
			bw.WriteString(separator + strconv.FormatFloat(s.Variance[i], 'g', -1, 64))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ReadReport parses the output of WriteReport. Series whose label is unknown keep an empty Algorithm.
func ReadReport(r io.Reader) (*Result, error) {
	sc := bufio.NewScanner(r)

	if !sc.Scan() {
		return nil, fmt.Errorf("%w: missing iterations line", ErrMalformedReport)
	}
	iterations, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(sc.Text(), iterationsPrefix)))
	if err != nil || !strings.HasPrefix(sc.Text(), iterationsPrefix) {
		return nil, fmt.Errorf("%w: bad iterations line %q", ErrMalformedReport, sc.Text())
	}

	if !sc.Scan() {
		return nil, fmt.Errorf("%w: missing header", ErrMalformedReport)
	}
	header := splitFields(sc.Text())
	if len(header) == 0 || header[0] != bucketsHeader || len(header)%2 != 1 {
		return nil, fmt.Errorf("%w: bad header %q", ErrMalformedReport, sc.Text())
	}

	res := &Result{Iterations: iterations}
	for c := 1; c < len(header); c += 2 {
		label, ok := strings.CutPrefix(header[c], "mean")
		if !ok || header[c+1] != "variance"+label {
			return nil, fmt.Errorf("%w: bad column pair %q, %q", ErrMalformedReport, header[c], header[c+1])
		}
		res.Series = append(res.Series, Series{Algorithm: algorithmOf(label), Label: label})
	}

	for line := 3; sc.Scan(); line++ {
		fields := splitFields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != len(header) {
			return nil, fmt.Errorf("%w: line %d has %d fields, want %d", ErrMalformedReport, line, len(fields), len(header))
		}
		n, err := strconv.ParseInt(fields[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedReport, line, err)
		}
		res.BucketCounts = append(res.BucketCounts, int32(n))
		for j := range res.Series {
			mean, err := strconv.ParseFloat(fields[1+2*j], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedReport, line, err)
			}
			variance, err := strconv.ParseFloat(fields[2+2*j], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedReport, line, err)
			}
			res.Series[j].Mean = append(res.Series[j].Mean, mean)
			res.Series[j].Variance = append(res.Series[j].Variance, variance)
		}
	}
	if err = sc.Err(); err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	return res, nil
}

func splitFields(line string) []string {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	fields := strings.Split(line, ";")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}
