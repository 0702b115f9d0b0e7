// SPDX-License-Identifier: MPL-2.0

package main

import cmd "gamebox-setup/cmd/gamebox-setup"

func main() {
	cmd.Execute()
}
