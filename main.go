// SPDX-License-Identifier: MPL-2.0

package main

import cmd "mcpsetup/cmd/mcpsetup"

func main() {
	cmd.Execute()
}
