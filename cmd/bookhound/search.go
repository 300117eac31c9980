package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"bookhound"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	libraryIDs := c.LibraryIDs
	if len(libraryIDs) == 0 {
		// No restriction means every library of every service.
		libraries, err := deps.Aggregator.GetLibraries(deps.Ctx)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", bookhound.ErrorMessage(err))
			return err
		}
		for _, lib := range libraries {
			libraryIDs = append(libraryIDs, lib.ID)
		}
	}

	var collected []bookhound.SearchEntity
	for entity := range deps.Aggregator.Search(deps.Ctx, c.Keyword, libraryIDs) {
		collected = append(collected, entity)
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n",
			entity.Book.ISBN, titleOf(entity.Book), summarizeHoldings(entity.HoldingSummaries))
	}
	if len(collected) == 0 {
		fmt.Fprintln(deps.Stdout, "No results.")
	}

	if c.Export != "" {
		data, err := json.MarshalIndent(collected, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(c.Export, data, 0o644); err != nil {
			return fmt.Errorf("failed to write export file: %w", err)
		}
		fmt.Fprintf(deps.Stdout, "Wrote %d entities to %s\n", len(collected), c.Export)
	}
	return nil
}

func titleOf(b bookhound.Book) string {
	if b.Title == nil {
		return "(제목 없음)"
	}
	return *b.Title
}

func summarizeHoldings(summaries []bookhound.HoldingSummary) string {
	parts := make([]string, len(summaries))
	for i, h := range summaries {
		parts[i] = fmt.Sprintf("%s(%s)", h.LibraryID, statusLabel(h.Status))
	}
	return strings.Join(parts, " ")
}

func statusLabel(status *bookhound.HoldingStatus) string {
	switch {
	case status == nil:
		return "?"
	case status.Available != nil:
		return "대출가능"
	case status.OnLoan != nil:
		return "대출중"
	default:
		return "대출불가"
	}
}
