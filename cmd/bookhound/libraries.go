package main

import (
	"fmt"

	"bookhound"
)

// Run executes the libraries command.
func (c *LibrariesCmd) Run(deps *Dependencies) error {
	libraries, err := deps.Aggregator.GetLibraries(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookhound.ErrorMessage(err))
		return err
	}

	for _, lib := range libraries {
		if lib.Coordinate != nil {
			fmt.Fprintf(deps.Stdout, "%s  %s  (%.5f, %.5f)\n",
				lib.ID, lib.Name, lib.Coordinate.Latitude, lib.Coordinate.Longitude)
		} else {
			fmt.Fprintf(deps.Stdout, "%s  %s\n", lib.ID, lib.Name)
		}
	}
	return nil
}
