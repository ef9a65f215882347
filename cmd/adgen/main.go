// Package main provides the adgen CLI: an interactive flow for generating
// product advertisement videos and checking job status.
package main

func main() {
	Execute()
}
