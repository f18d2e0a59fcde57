package main

import (
	"pricetrack/cmd/pricetrack/commands"
	"pricetrack/lib/cliutil"
)

func main() {
	commands.ExecuteContext(cliutil.SignalContext())
}
