// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/yukihiko-shinoda/invoke-lint/cmd/invokelint"

func main() {
	cmd.Execute()
}
