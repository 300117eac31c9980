package main

import (
	"fmt"

	bookgin "bookhound/gin"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server := bookgin.NewServer(deps.Aggregator, bookgin.WithLogger(deps.Logger))
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", c.Bind)
	return server.Run(c.Bind)
}
