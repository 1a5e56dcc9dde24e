// Command megafauna runs the herbivore energetics/population simulation
// core against a TOML instruction file, wiring a demo or CSV-forced
// habitat into a multi-day run.
package main

import "github.com/savanna-sim/megafauna/internal/cli"

func main() {
	cli.Execute()
}
