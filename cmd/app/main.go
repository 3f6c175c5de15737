// Command pagecrawler fetches a page, stores it as a flat .html file and
// recursively does the same for a bounded number of its links.
//
// Usage:
//
//	pagecrawler [storageFolder] [maxLinksPerPage] [url] [depth]
package main

func main() {
	Execute()
}
