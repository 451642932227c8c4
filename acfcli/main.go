/*
Copyright © 2022 Morgan Gangwere <morgan.gangwere@gmail.com>
*/
package main

import "github.com/indrora/acf/acfcli/cmd"

func main() {
	cmd.Execute()
}
