package main

import "github.com/coursechat-labs/coursechat-cli/internal/adapters/driving/cli"

func main() {
	cli.Execute()
}
