/*
Copyright © 2022 Morgan Gangwere <morgan.gangwere@gmail.com>
*/
package cmd

import (
	"fmt"
	"strings"
)

const barWidth = 50

// displayProgress renders the carriage-return progress bar:
// [=========>         ] 42.0% some/long/file.txt
func displayProgress(currentFile string, currentFileProgress, generalProgress float32) {
	display := currentFile
	if len(display) > 35 {
		display = "..." + display[len(display)-32:]
	}

	pos := int(float32(barWidth) * generalProgress)
	var bar strings.Builder
	bar.WriteByte('[')
	for i := 0; i < barWidth; i++ {
		switch {
		case i < pos:
			bar.WriteByte('=')
		case i == pos:
			bar.WriteByte('>')
		default:
			bar.WriteByte(' ')
		}
	}
	bar.WriteByte(']')

	fmt.Printf("%s %.1f%% %-40s\r", bar.String(), generalProgress*100.0, display)
}
