// Package display formats distribution results for people to read.
package display

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode"
	"unicode/utf8"

	"github.com/mmynk/tipsplit/internal/models"
)

// Palette holds the avatar colours, assigned by roster position.
var Palette = []string{"#6366f1", "#ec4899", "#10b981", "#f59e0b", "#8b5cf6", "#06b6d4"}

const overflowWarning = "Locked amounts exceed the total!"

// Currency formats an amount as dollars with two decimals.
func Currency(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// Percent formats a whole percentage.
func Percent(p int) string {
	return fmt.Sprintf("%d%%", p)
}

// AvatarColor returns the palette colour for the participant at index.
func AvatarColor(index int) string {
	return Palette[index%len(Palette)]
}

// Initial is the upper-cased first letter of name, or "?" for an empty name.
func Initial(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}

// Render writes a summary of the bill and one line per participant.
func Render(w io.Writer, state models.BillState, result models.DistributionResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Bill\t%s\n", Currency(state.BillTotal))
	fmt.Fprintf(tw, "Tip (%s)\t%s\n", Percent(state.TipPercentage), Currency(result.TipAmount))
	fmt.Fprintf(tw, "Total\t%s\n", Currency(result.GrandTotal))
	fmt.Fprintln(tw, "\t")

	for i, share := range result.Shares {
		var marks []string
		if share.Locked {
			marks = append(marks, "locked")
		}
		fmt.Fprintf(tw, "[%s] %s\t%s\t%s of total\t%s\n",
			Initial(share.Name),
			share.Name,
			Currency(share.Amount),
			Percent(share.SharePercent),
			strings.Join(append(marks, AvatarColor(i)), " "),
		)
	}

	if result.IsOverflow {
		fmt.Fprintf(tw, "\nWarning: %s\n", overflowWarning)
	}
	return tw.Flush()
}
