package interactive

import (
	"github.com/charmbracelet/huh"
)

// RefLister provides the reference names offered by the pickers.
type RefLister interface {
	References() []string
}

// Range is a revision selection: Start is the tip to walk from, End
// optionally bounds the walk (End..Start semantics). Empty End means
// the full ancestry.
type Range struct {
	Start string
	End   string
}

// Run starts the interactive mode: pick what to view before the full
// interface opens.
func Run(refs RefLister) (Range, error) {
	var action string

	err := huh.NewSelect[string]().
		Title("gitfold - What do you want to view?").
		Options(
			huh.NewOption("History - Full history of a branch or tag", "history"),
			huh.NewOption("Range - Commits of one branch since another", "range"),
		).
		Value(&action).
		Run()

	if err != nil {
		return Range{}, err // User cancelled
	}

	switch action {
	case "history":
		return pickHistory(refs)
	case "range":
		return pickRange(refs)
	}

	return Range{Start: "HEAD"}, nil
}
