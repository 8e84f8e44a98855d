// Command astrolabe builds natal charts and scores the compatibility of two
// charts from tabulated ephemeris data.
package main

import "github.com/papapumpkin/astrolabe/cmd"

func main() {
	cmd.Execute()
}
