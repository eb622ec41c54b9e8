// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/latebind/latebind/cmd/latebind"

func main() {
	cmd.Execute()
}
