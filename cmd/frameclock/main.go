// Command frameclock drives the frame timer on a simulated display.
package main

func main() {
	Execute()
}
