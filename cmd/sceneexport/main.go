// sceneexport converts host dumps into engine collision (CMSH) and scene
// (SCNE) files.
package main

func main() {
	Execute()
}
