package main

import "github.com/madspljoensson/life-dashboard/cmd/lifedash/root"

func main() {
	root.Execute()
}
