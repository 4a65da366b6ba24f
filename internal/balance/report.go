package balance

import (
	"fmt"
	"io"
)

// WriteReport writes the fixed-format console summary for the balance
func WriteReport(w io.Writer, b *Balance) {
	leaveFile := b.LeaveFile()
	if leaveFile == "" {
		leaveFile = "none"
	}

	fmt.Fprintf(w, "\nKimai Statistics for %s\n", b.Period())
	fmt.Fprintln(w, "============================================")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Work and off-days")
	fmt.Fprintln(w, "-----------------")
	fmt.Fprintf(w, "- Working days: %d\n", b.WorkDays())
	fmt.Fprintf(w, "- Weekend days: %d\n", b.WeekendDays())
	fmt.Fprintf(w, "- Holidays: %d\n", b.Holidays())
	fmt.Fprintf(w, "- Annual leave: %d\n", b.LeaveDays())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Balance account")
	fmt.Fprintln(w, "---------------")
	fmt.Fprintf(w, "- Working hours (demand): %s (%.2f)\n", FormatWorkTime(b.DemandedTime()), b.DemandedHours())
	fmt.Fprintf(w, "- Hours worked: %s (%.2f)\n", FormatWorkTime(b.WorkedTime()), b.WorkedHours())
	fmt.Fprintf(w, "- Balance: %s (%.2f)\n", FormatWorkTime(b.BalanceTime()), b.BalanceHours())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Data files")
	fmt.Fprintln(w, "----------")
	fmt.Fprintf(w, "- Kimai data: %s\n", b.LogFile())
	fmt.Fprintf(w, "- Vacation:   %s\n", leaveFile)
}
