package cli

import (
	"fmt"
	"io"

	"github.com/common-nighthawk/go-figure"
)

const appName = "AI Workbench"

func printBanner(w io.Writer) {
	fmt.Fprintln(w, figure.NewFigure(appName, "cybermedium", true).String())
}
