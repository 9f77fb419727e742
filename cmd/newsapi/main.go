package main

import "github.com/news-api/cmd/newsapi/commands"

func main() {
	commands.Execute()
}
