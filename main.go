/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package main

import "github.com/janboddez/scrobbble-addon/cmd"

func main() {
	cmd.Execute()
}
