package render

import (
	"fmt"

	"github.com/spystrach/interimBot/internal/domain"
)

// French calendar names, indexed by time.Weekday / time.Month. The
// original rendered dates through the fr_FR process locale; the bot's
// audience has not changed.
var frenchWeekdays = [7]string{"dim.", "lun.", "mar.", "mer.", "jeu.", "ven.", "sam."}

var frenchMonths = [13]string{"",
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// DisplayDate renders a stored date key as "mar. 5 mars".
func DisplayDate(key string) (string, error) {
	t, err := domain.KeyToTime(key)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %d %s", frenchWeekdays[t.Weekday()], t.Day(), frenchMonths[t.Month()]), nil
}

// ExcelDate renders a stored date key in the dd/mm/yyyy form the
// spreadsheet template expects.
func ExcelDate(key string) (string, error) {
	t, err := domain.KeyToTime(key)
	if err != nil {
		return "", err
	}
	return t.Format(domain.ExcelDateLayout), nil
}
