package main

import "blendshape-presets/cmd"

func main() {
	cmd.Execute()
}
