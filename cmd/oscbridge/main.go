// Command oscbridge receives OSC over UDP into a fixed-rate host loop, and
// sends OSC messages for testing.
package main

func main() {
	Execute()
}
