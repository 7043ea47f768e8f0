// Command entd-pipeline cleans the ENTD 2008 long-distance survey and
// prepares the inputs of the long-distance demand model.
package main

func main() {
	execute()
}
