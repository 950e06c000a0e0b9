// Command listctl is the terminal client for the list service. It keeps a
// local session database so login survives between invocations.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
