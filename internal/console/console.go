// Package console prints short, styled status lines for humans.
package console

import (
	"fmt"
	"io"

	"github.com/gookit/color"
)

var (
	errorStyle = color.New(color.FgRed, color.OpBold)
	infoStyle  = color.New(color.FgGreen, color.OpBold)
)

// PrintError writes a bold red title followed by an unstyled detail.
func PrintError(w io.Writer, title, detail string) {
	fmt.Fprintln(w, errorStyle.Sprint(title)+detail)
}

// PrintInfo writes a bold green title followed by an unstyled detail.
func PrintInfo(w io.Writer, title, detail string) {
	fmt.Fprintln(w, infoStyle.Sprint(title)+detail)
}
