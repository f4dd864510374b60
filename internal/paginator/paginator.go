// Package paginator splits assembled menu text into carrier-compliant
// pages. A page is bound by two limits at once: a character budget and a
// line budget. Pages are linked by control lines ("99. More", "0. Back")
// that the navigation engine recognizes as pagination triggers.
package paginator

import (
	"fmt"
	"strings"
)

// Limits bounds a single page.
type Limits struct {
	MaxChars int
	MaxLines int
}

// Controls are the pre-rendered navigation lines appended to split pages.
type Controls struct {
	Next string
	Back string
}

// Result is the outcome of pagination. Pages always holds at least one
// entry; Split reports whether control lines were added.
type Result struct {
	Pages []string
	Split bool
}

// OversizeError reports a single source line that cannot fit on any page
// even with nothing else on it. This is a menu configuration fault.
type OversizeError struct {
	Line string
	Max  int
}

func (e *OversizeError) Error() string {
	return fmt.Sprintf("the text %q is too large to be displayed; break it up with newline characters so each piece is at most %d characters", e.Line, e.Max)
}

// Paginate renders lines into one page if both limits allow, otherwise into
// a sequence of linked pages. Every non-final page carries the Next control
// and every non-first page the Back control; the first page also carries
// Back when hasBackAction is set, so a subscriber can leave the menu
// without paging to its back item.
func Paginate(lines []string, lim Limits, ctl Controls, hasBackAction bool) (*Result, error) {
	whole := strings.Join(lines, "\n")
	if len(whole) <= lim.MaxChars && len(lines) <= lim.MaxLines {
		return &Result{Pages: []string{whole}, Split: false}, nil
	}

	// Worst case both controls ride along with a line.
	maxSafe := lim.MaxChars - len("\n"+ctl.Next+"\n"+ctl.Back)

	// Greedy accumulation: keep adding lines while the pending page, plus
	// the control lines its position requires, stays within both limits.
	var pages [][]string
	var cur []string
	for _, line := range lines {
		candidate := append(append([]string{}, cur...), line)
		if fits(candidate, len(pages), lim, ctl, hasBackAction) {
			cur = candidate
			continue
		}
		if len(cur) == 0 {
			return nil, &OversizeError{Line: line, Max: maxSafe}
		}
		pages = append(pages, cur)
		cur = []string{line}
		if !fits(cur, len(pages), lim, ctl, hasBackAction) {
			return nil, &OversizeError{Line: line, Max: maxSafe}
		}
	}
	pages = append(pages, cur)

	out := make([]string, len(pages))
	last := len(pages) - 1
	for i, pageLines := range pages {
		text := strings.Join(pageLines, "\n")
		if i < last {
			text += "\n" + ctl.Next
		}
		if i > 0 || hasBackAction {
			text += "\n" + ctl.Back
		}
		out[i] = strings.TrimSpace(text)
	}
	return &Result{Pages: out, Split: true}, nil
}

// fits checks a pending page against both limits, assuming the worst-case
// controls for its position: every page may end up non-final, and every
// page but a first without a back action carries the back control.
func fits(lines []string, pageIdx int, lim Limits, ctl Controls, hasBackAction bool) bool {
	chars := len(strings.Join(lines, "\n")) + len("\n"+ctl.Next)
	count := len(lines) + 1
	if pageIdx > 0 || hasBackAction {
		chars += len("\n" + ctl.Back)
		count++
	}
	return chars <= lim.MaxChars && count <= lim.MaxLines
}
