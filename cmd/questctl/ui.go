package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	headerColor = color.New(color.FgYellow, color.Bold)
	keyColor    = color.New(color.FgCyan)
	mutedColor  = color.New(color.Faint)
)

func printHeader(w io.Writer, title string) {
	headerColor.Fprintf(w, "=== %s ===\n", title)
}

func printStatus(w io.Writer, symbol, message string, attr color.Attribute) {
	c := color.New(attr)
	fmt.Fprintf(w, "%s %s\n", c.Sprint(symbol), message)
}

func printField(w io.Writer, key string, value any) {
	fmt.Fprintf(w, "%s %v\n", keyColor.Sprintf("%-22s", key+":"), value)
}
