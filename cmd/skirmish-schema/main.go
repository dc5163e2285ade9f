// Command skirmish-schema prints the JSON schema of the client/server wire messages
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/lixenwraith/skirmish/world"
)

func main() {
	out := flag.String("out", "", "write the schema to this file instead of stdout")
	flag.Parse()

	data, err := json.MarshalIndent(world.Schema(), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "skirmish-schema: %v\n", err)
		os.Exit(1)
	}
	data = append(data, '\n')

	if *out == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "skirmish-schema: %v\n", err)
		os.Exit(1)
	}
}
