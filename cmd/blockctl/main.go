// Command blockctl builds binary files from HCL schemas and JSON, TOML,
// YAML or HCL input, and shows the layout of what it built.
package main

func main() {
	execute()
}
