package main

import "github.com/fieldserve/backoffice/cmd"

func main() {
	cmd.Execute()
}
