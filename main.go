package main

import "github.com/pratapsingh123om/wqam-dashboard/cmd"

func main() {
	cmd.Execute()
}
