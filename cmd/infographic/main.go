// Command infographic turns a social feed export into the statistics bundle
// and mounts the four charts and the word cloud into an HTML page.
//
//	infographic collect --posts feed.jsonl --user 42 --out bundle.json
//	infographic render --data bundle.json --template index.html --out page.html
//	infographic export --data bundle.json --chart post-types --format png
//	infographic watch --data bundle.json --template index.html
//	infographic summary --data bundle.json --xlsx summary.xlsx
package main

func main() {
	Execute()
}
