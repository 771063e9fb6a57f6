package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/connectome/matrix"
)

const partitionHeader = "node,module"

// WriteCSV writes m as comma separated rows using the shortest exact
// float representation.
func WriteCSV(w io.Writer, m matrix.Matrix) error {
	if err := matrix.ValidateNotNil(m); err != nil {
		return fmt.Errorf("loader: WriteCSV: %w", err)
	}
	cw := csv.NewWriter(w)
	record := make([]string, m.Cols())
	for i := 0; i < m.Rows(); i++ {
		for j := range record {
			v, err := m.At(i, j)
			if err != nil {
				return fmt.Errorf("loader: WriteCSV: %w", err)
			}
			record[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("loader: WriteCSV: %w", err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// WritePartition writes one "node,module" record per node under a header.
func WritePartition(w io.Writer, labels []int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(partitionHeader, ",")); err != nil {
		return fmt.Errorf("loader: WritePartition: %w", err)
	}
	for node, label := range labels {
		if err := cw.Write([]string{strconv.Itoa(node), strconv.Itoa(label)}); err != nil {
			return fmt.Errorf("loader: WritePartition: %w", err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// ReadPartition reads the output of WritePartition. The header is optional;
// nodes must appear exactly once each, covering 0..N-1 in any order.
func ReadPartition(r io.Reader) ([]int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("loader: partition: %w: %w", ErrParse, err)
	}
	if len(records) > 0 && strings.Join(records[0], ",") == partitionHeader {
		records = records[1:]
	}

	labels := make([]int, len(records))
	seen := make([]bool, len(records))
	for line, rec := range records {
		node, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("loader: partition record %d: node %q: %w", line+1, rec[0], ErrParse)
		}
		label, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("loader: partition record %d: module %q: %w", line+1, rec[1], ErrParse)
		}
		if node < 0 || node >= len(records) || seen[node] {
			return nil, fmt.Errorf("loader: partition record %d: node %d: %w",
				line+1, node, matrix.ErrIndexOutOfRange)
		}
		seen[node] = true
		labels[node] = label
	}

	return labels, nil
}
