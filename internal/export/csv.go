package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// WriteCSV writes one row per frame: the step index followed by one column
// per cell. Values use the shortest exact representation.
func WriteCSV(w io.Writer, frames [][]float64) error {
	cw := csv.NewWriter(w)

	if len(frames) > 0 {
		header := make([]string, 0, len(frames[0])+1)
		header = append(header, "step")
		for m := range frames[0] {
			header = append(header, fmt.Sprintf("m%d", m))
		}
		if err := cw.Write(header); err != nil {
			return err
		}
	}

	for q, frame := range frames {
		row := make([]string, 0, len(frame)+1)
		row = append(row, strconv.Itoa(q))
		for _, v := range frame {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func ExportCSV(path string, frames [][]float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteCSV(file, frames); err != nil {
		return err
	}
	return file.Close()
}
