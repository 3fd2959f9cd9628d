package main

import (
	"os"

	"github.com/stigoleg/jiggle/internal/cli"
	"github.com/stigoleg/jiggle/internal/platform"
	"github.com/stigoleg/jiggle/internal/platform/robot"
)

const appVersion = "0.1.0"

func main() {
	cmd := cli.NewRootCommand(appVersion, func() (platform.Pointer, platform.Display) {
		return robot.NewPointer(), robot.NewDisplay()
	})
	os.Exit(cli.Execute(cmd))
}
