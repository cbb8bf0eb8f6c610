// Package main provides the entry point for the aoi CLI.
//
// aoi analyzes automated optical inspection defect data for quad panels:
// it maps unit indices onto the physical 2x2 layout, ranks defect types,
// and compares quadrants against each other.
//
// Usage:
//
//	aoi serve
//	aoi analyze <defect-file>
//
// See --help for all available options.
package main

// main is the entry point for aoi.
func main() {
	Execute()
}
