package report

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"stock_potential/pkg/core/equity"
)

// WriteCSV writes one line per projected round, with a header row.
func WriteCSV(w io.Writer, sched equity.Schedule) error {
	rows := sched.Rounds
	if rows == nil {
		rows = []equity.Round{}
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return errors.Wrap(err, "write csv")
	}
	return nil
}
