// main.go
package main

import "art-booking/cmd"

func main() {
	cmd.Execute()
}
