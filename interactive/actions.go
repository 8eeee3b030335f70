package interactive

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

func pickHistory(refs RefLister) (Range, error) {
	options := buildRefOptions(refs.References())
	if len(options) == 0 {
		fmt.Println("No references available")
		return Range{Start: "HEAD"}, nil
	}

	var start string
	err := huh.NewSelect[string]().
		Title("Select the branch or tag to view").
		Options(options...).
		Value(&start).
		Run()

	if err != nil {
		return Range{}, err // Cancelled
	}

	return Range{Start: start}, nil
}

func pickRange(refs RefLister) (Range, error) {
	options := buildRefOptions(refs.References())
	if len(options) < 2 {
		fmt.Println("Need at least 2 references for a range")
		return Range{Start: "HEAD"}, nil
	}

	var start string
	err := huh.NewSelect[string]().
		Title("Select the branch to view").
		Options(options...).
		Value(&start).
		Run()

	if err != nil {
		return Range{}, err // Cancelled
	}

	var end string
	err = huh.NewSelect[string]().
		Title("Select the base to stop at").
		Description(fmt.Sprintf("Viewing %s since...", start)).
		Options(options...).
		Value(&end).
		Run()

	if err != nil {
		return Range{}, err // Cancelled
	}

	if end == start {
		fmt.Println("Base equals the viewed ref; showing full history")
		return Range{Start: start}, nil
	}

	return Range{Start: start, End: end}, nil
}

func buildRefOptions(refs []string) []huh.Option[string] {
	options := []huh.Option[string]{
		huh.NewOption("HEAD (current)", "HEAD"),
	}
	for _, r := range refs {
		if r == "HEAD" {
			continue
		}
		options = append(options, huh.NewOption(r, r))
	}
	return options
}
