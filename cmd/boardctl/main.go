// Command boardctl drives a running Cookie & Milk board server over HTTP.
package main

import (
	"context"
	"log"
	"os"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
