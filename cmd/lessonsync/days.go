package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/jfsagro-glitch/lessonsync"
)

// Run executes the days command.
func (c *DaysCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(deps.Store.Path())
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(deps.Stdout, "No dataset published yet. Run 'lessonsync sync' first.")
			return nil
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	ds, err := lessonsync.DecodeDataset(data)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lessonsync.ErrorMessage(err))
		return err
	}

	days := make([]int, 0, len(ds))
	for day := range ds {
		days = append(days, day)
	}
	sort.Ints(days)

	for _, day := range days {
		lesson := ds[day]
		fmt.Fprintf(deps.Stdout, "day %2d  %-30s  posts=%d media=%d task=%v\n",
			day, lesson.Title, len(lesson.Body.Posts()), len(lesson.Media), lesson.Task != "")
	}
	return nil
}
