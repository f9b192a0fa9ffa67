package main

import "github.com/sandeepkv93/studyquest/internal/cli"

func main() {
	cli.Execute()
}
