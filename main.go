package main

import "todo-folders.com/todo-folders/cmd"

func main() {
	cmd.Execute()
}
