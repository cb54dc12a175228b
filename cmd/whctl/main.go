// Command whctl searches and browses wallhaven from the command line and can
// serve searches over HTTP with Prometheus metrics.
package main

func main() {
	Execute()
}
