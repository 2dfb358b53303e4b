// Package main provides the jjmd CLI application.
// jjmd manages the Jal Jeevan Mission coverage database: schema,
// operator accounts, seed data, statistics, chart specs and exports.
package main

import (
	"os"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
