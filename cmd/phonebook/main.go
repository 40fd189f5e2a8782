package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bsm/phonebook"
)

func main() {
	file := flag.String("file", "phonebook.db", "Path to the phonebook file")
	recordSize := flag.Int("record-size", phonebook.DefaultRecordSize, "Slot size in bytes")
	sync := flag.Bool("sync", false, "Fsync after every write")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <command> [args]\n\n%s\nFlags:\n", os.Args[0], usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	log.SetFlags(0)

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	c := &cli{
		store: phonebook.New(*file, &phonebook.Options{
			RecordSize: *recordSize,
			Sync:       *sync,
		}),
		out: os.Stdout,
	}

	var err error
	if flag.Arg(0) == "shell" {
		err = c.shell(os.Stdin)
	} else {
		err = c.run(flag.Args())
	}
	if err != nil {
		log.Fatalln(err)
	}
}
