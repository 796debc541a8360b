// Package datetime provides date and time utility functions.
package datetime

import (
	"time"

	"github.com/bbzsolar/solar-roof-map/pkg/constants"
)

const (
	// DateLayout is the dd/mm/yyyy layout shown on project and proposal cards.
	DateLayout = constants.DisplayDateLayout
)

// Format renders t as a dashboard date.
func Format(t time.Time) string {
	return t.Format(DateLayout)
}

// OffsetDate returns the string-formatted date offset by the given number of
// months relative to the given date.
func OffsetDate(date, layout string, months int) (string, error) {
	t, err := time.Parse(layout, date)
	if err != nil {
		return date, err
	}
	return t.AddDate(0, months, 0).Format(layout), nil
}

// DateBeforeDate returns true if firstDate is strictly before secondDate. Both
// dates use DateLayout.
func DateBeforeDate(firstDate string, secondDate string) (bool, error) {
	firstDateT, err := time.Parse(DateLayout, firstDate)
	if err != nil {
		return false, err
	}
	secondDateT, err := time.Parse(DateLayout, secondDate)
	if err != nil {
		return false, err
	}
	return firstDateT.Before(secondDateT), nil
}
