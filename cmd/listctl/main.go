// Command listctl exercises the list engine: it runs the scripted self-test
// scenarios and measures insert and access throughput per store kind.
package main

func main() {
	execute()
}
