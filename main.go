package main

import (
	"os"

	"github.com/Builder-Lawyers/tutorials-backend/cmd"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "reindex" {
		cmd.Reindex()
		return
	}
	cmd.Init()
}
