// Command qabot is a single-turn question answering chat over a local dataset
// with a remote LLM fallback.
package main

func main() {
	Execute()
}
